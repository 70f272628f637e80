package websocket

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clientFrame - a frame as a browser sends it: final and masked.
func clientFrame(opCode byte, payload []byte) []byte {
	mask := []byte{0x11, 0x22, 0x33, 0x44}

	buf := []byte{0x80 | opCode}
	switch {
	case len(payload) < 126:
		buf = append(buf, 0x80|byte(len(payload)))
	case len(payload) < 1<<16:
		buf = append(buf, 0x80|126)
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(payload)))
	default:
		buf = append(buf, 0x80|127)
		buf = binary.BigEndian.AppendUint64(buf, uint64(len(payload)))
	}

	buf = append(buf, mask...)
	for i, b := range payload {
		buf = append(buf, b^mask[i%4])
	}

	return buf
}

func newTestClient(in []byte) (*client, *bytes.Buffer) {
	out := &bytes.Buffer{}
	bufrw := bufio.NewReadWriter(bufio.NewReader(bytes.NewReader(in)), bufio.NewWriter(out))

	return newClient(bufrw), out
}

func TestWriteFrame(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		header []byte
	}{
		{"short", 5, []byte{0x81, 5}},
		{"16-bit length", 300, []byte{0x81, 126, 0x01, 0x2c}},
		{"64-bit length", 70000, []byte{0x81, 127, 0, 0, 0, 0, 0, 0x01, 0x11, 0x70}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			payload := bytes.Repeat([]byte{'a'}, tt.size)

			err := writeFrame(bufio.NewWriter(out), frame{isFin: true, opCode: opText, length: uint64(tt.size), payload: payload})

			require.NoError(t, err)
			assert.Equal(t, tt.header, out.Bytes()[:len(tt.header)])
			assert.Equal(t, payload, out.Bytes()[len(tt.header):])
		})
	}
}

func TestReadFrame(t *testing.T) {
	t.Run("Unmasks client payload", func(t *testing.T) {
		payload := bytes.Repeat([]byte("tic"), 100)

		f, err := readFrame(bufio.NewReader(bytes.NewReader(clientFrame(opText, payload))))

		require.NoError(t, err)
		assert.True(t, f.isFin)
		assert.Equal(t, opText, f.opCode)
		assert.Equal(t, payload, f.payload)
	})

	t.Run("Truncated frame", func(t *testing.T) {
		raw := clientFrame(opText, []byte("hello"))

		_, err := readFrame(bufio.NewReader(bytes.NewReader(raw[:len(raw)-2])))

		require.Error(t, err)
	})

	t.Run("Too large", func(t *testing.T) {
		raw := []byte{0x81, 127}
		raw = binary.BigEndian.AppendUint64(raw, maxPayloadSize+1)

		_, err := readFrame(bufio.NewReader(bytes.NewReader(raw)))

		require.ErrorIs(t, err, errFrameTooLarge)
	})
}

func TestClientReadMessage(t *testing.T) {
	t.Run("Answers ping and joins fragments", func(t *testing.T) {
		// Given: a ping followed by a message split in two frames
		first := clientFrame(opText, []byte(`{"action":`))
		first[0] &^= 0x80
		second := clientFrame(0x0, []byte(`"game:new"}`))

		in := append(clientFrame(opPing, []byte("hi")), first...)
		in = append(in, second...)
		c, out := newTestClient(in)

		// When: a message is read
		msg, err := c.readMessage()

		// Then: the ping is answered and the fragments are joined
		require.NoError(t, err)
		assert.JSONEq(t, `{"action":"game:new"}`, string(msg))
		assert.Equal(t, []byte{0x80 | opPong, 2, 'h', 'i'}, out.Bytes())
	})

	t.Run("Close frame", func(t *testing.T) {
		c, out := newTestClient(clientFrame(opClose, nil))

		_, err := c.readMessage()

		require.ErrorIs(t, err, errConnectionClosed)
		assert.Equal(t, []byte{0x80 | opClose, 0}, out.Bytes())
	})
}
