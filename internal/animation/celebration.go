package animation

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/theme"
)

const (
	VictoryDuration = 2500 * time.Millisecond
	dimmerAlpha     = 0.5
	effectCount     = 2
)

type CelebrationOptions struct {
	Width        float64
	Duration     time.Duration
	Particles    int
	ParticleSize float64
}

func DefaultCelebrationOptions() CelebrationOptions {
	return CelebrationOptions{
		Width:        1000,
		Duration:     VictoryDuration,
		Particles:    150,
		ParticleSize: 8,
	}
}

type EffectFrame struct {
	OffsetX float64 `json:"offset_x"`
	Frame
}

type CelebrationFrame struct {
	Winner      entity.Player `json:"winner"`
	Banner      string        `json:"banner"`
	BannerColor string        `json:"banner_color"`
	DimAlpha    float64       `json:"dim_alpha"`
	Effects     []EffectFrame `json:"effects"`
	Done        bool          `json:"done"`
}

// Celebration is the victory overlay: a dimmed screen, a banner and two particle bursts.
type Celebration struct {
	winner    entity.Player
	startedAt time.Time
	duration  time.Duration
	theme     theme.Theme
	effects   [effectCount]*Dissolve
	offsets   [effectCount]float64
}

// NewCelebration - rebuilds the same celebration for the same record, so frames can be computed anywhere.
func NewCelebration(record entity.Celebration, options CelebrationOptions, th theme.Theme) *Celebration {
	defaults := DefaultCelebrationOptions()
	if options.Width <= 0 {
		options.Width = defaults.Width
	}
	if options.Duration <= 0 {
		options.Duration = defaults.Duration
	}

	r := rand.New(rand.NewSource(record.Seed)) //nolint: gosec // cosmetic randomness

	celebration := &Celebration{
		winner:    record.Winner,
		startedAt: record.StartedAt,
		duration:  options.Duration,
		theme:     th,
	}

	for i := range celebration.effects {
		celebration.effects[i] = NewDissolve(Options{
			Size:         options.Width * 0.4,
			ParticleSize: options.ParticleSize,
			Duration:     options.Duration,
			Color:        ColorRandom,
			Count:        options.Particles,
		}, th, r)
		celebration.offsets[i] = float64(i) * options.Width * 0.66
	}

	return celebration
}

func (that *Celebration) Winner() entity.Player {
	return that.winner
}

func (that *Celebration) Banner() string {
	return fmt.Sprintf("%s wins!", that.winner)
}

// Busy - true until the full duration has passed since the start.
func (that *Celebration) Busy(now time.Time) bool {
	return now.Sub(that.startedAt) < that.duration
}

func (that *Celebration) Elapsed(now time.Time) time.Duration {
	return now.Sub(that.startedAt)
}

func (that *Celebration) Frame(elapsed time.Duration) CelebrationFrame {
	effects := make([]EffectFrame, len(that.effects))
	for i, effect := range that.effects {
		effects[i] = EffectFrame{
			OffsetX: that.offsets[i],
			Frame:   effect.Frame(elapsed),
		}
	}

	return CelebrationFrame{
		Winner:      that.winner,
		Banner:      that.Banner(),
		BannerColor: that.theme.Text,
		DimAlpha:    dimmerAlpha,
		Effects:     effects,
		Done:        elapsed >= that.duration,
	}
}
