package websocket

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

const (
	opText  byte = 0x1
	opClose byte = 0x8
	opPing  byte = 0x9
	opPong  byte = 0xa

	maxPayloadSize = 1 << 20
)

var (
	errConnectionClosed = errors.New("connection closed by peer")
	errFrameTooLarge    = errors.New("frame is too large")
)

// frame represents a WebSocket frame and its metadata.
type frame struct {
	isFin   bool
	opCode  byte
	length  uint64
	payload []byte
}

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// client - one upgraded connection; writes may come from other connections' broadcasts.
type client struct {
	mutex     sync.Mutex
	bufrw     *bufio.ReadWriter
	sessionID string
}

func newClient(bufrw *bufio.ReadWriter) *client {
	return &client{bufrw: bufrw}
}

func (that *client) send(action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	return that.write(frame{
		isFin:   true,
		opCode:  opText,
		length:  uint64(len(response)),
		payload: response,
	})
}

func (that *client) write(f frame) error {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	return writeFrame(that.bufrw.Writer, f)
}

// readMessage - reads frames until a complete data message arrives, answering control frames on the way.
func (that *client) readMessage() ([]byte, error) {
	var message []byte

	for {
		f, err := readFrame(that.bufrw.Reader)
		if err != nil {
			return nil, err
		}

		switch f.opCode {
		case opClose:
			_ = that.write(frame{isFin: true, opCode: opClose})
			return nil, errConnectionClosed
		case opPing:
			if err = that.write(frame{isFin: true, opCode: opPong, length: f.length, payload: f.payload}); err != nil {
				return nil, err
			}
			continue
		case opPong:
			continue
		}

		message = append(message, f.payload...)
		if len(message) > maxPayloadSize {
			return nil, errFrameTooLarge
		}

		if f.isFin {
			return message, nil
		}
	}
}

func writeFrame(w *bufio.Writer, frameData frame) error {
	buf := make([]byte, 2, 10+len(frameData.payload))
	buf[0] |= frameData.opCode

	if frameData.isFin {
		buf[0] |= 0x80
	}

	switch {
	case frameData.length < 126:
		buf[1] |= byte(frameData.length)
	case frameData.length < 1<<16:
		buf[1] |= 126
		buf = binary.BigEndian.AppendUint16(buf, uint16(frameData.length))
	default:
		buf[1] |= 127
		buf = binary.BigEndian.AppendUint64(buf, frameData.length)
	}

	buf = append(buf, frameData.payload...)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return nil
}

func readFrame(r *bufio.Reader) (frame, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(r, header); err != nil {
		return frame{}, fmt.Errorf("failed to read header: %w", err)
	}

	f := frame{
		isFin:  header[0]>>7 == 1,
		opCode: header[0] & 0x0f,
	}
	masked := header[1]>>7 == 1

	length, err := readPayloadLength(r, header[1]&0x7f)
	if err != nil {
		return frame{}, err
	}

	if length > maxPayloadSize {
		return frame{}, errFrameTooLarge
	}

	var mask []byte
	if masked {
		mask = make([]byte, 4)
		if _, err = io.ReadFull(r, mask); err != nil {
			return frame{}, fmt.Errorf("failed to read mask: %w", err)
		}
	}

	f.length = length
	f.payload = make([]byte, length)
	if _, err = io.ReadFull(r, f.payload); err != nil {
		return frame{}, fmt.Errorf("failed to read payload: %w", err)
	}

	if mask != nil {
		for i := range f.payload {
			f.payload[i] ^= mask[i%4]
		}
	}

	return f, nil
}

func readPayloadLength(r *bufio.Reader, payloadLen byte) (uint64, error) {
	switch payloadLen {
	case 126:
		length := make([]byte, 2)
		if _, err := io.ReadFull(r, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}

		return uint64(binary.BigEndian.Uint16(length)), nil
	case 127:
		length := make([]byte, 8)
		if _, err := io.ReadFull(r, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}

		return binary.BigEndian.Uint64(length), nil
	default:
		return uint64(payloadLen), nil
	}
}
