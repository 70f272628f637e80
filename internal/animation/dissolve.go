// Package animation computes victory effects as pure functions of elapsed
// time. Whatever renders them only has to ask for a frame on every tick.
package animation

import (
	"math"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/theme"
)

// ColorRandom gives every particle its own colour from the theme.
const ColorRandom = "random"

type Random interface {
	Float64() float64
	Intn(n int) int
}

type Options struct {
	Size         float64
	ParticleSize float64
	Duration     time.Duration
	Color        string
	Count        int
}

func DefaultOptions() Options {
	return Options{
		Size:     100,
		Duration: 500 * time.Millisecond,
		Count:    8,
	}
}

type Particle struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Alpha float64 `json:"alpha"`
	Color string  `json:"color"`
}

type Frame struct {
	Elapsed   time.Duration `json:"elapsed"`
	Progress  float64       `json:"progress"`
	Particles []Particle    `json:"particles"`
	Done      bool          `json:"done"`
}

type particleSeed struct {
	origin    float64
	direction float64
	distance  float64
	color     string
}

// Dissolve scatters square particles outward from the diagonal of a square area while fading them out.
type Dissolve struct {
	options Options
	seeds   []particleSeed
}

func NewDissolve(options Options, th theme.Theme, r Random) *Dissolve {
	defaults := DefaultOptions()
	if options.Size <= 0 {
		options.Size = defaults.Size
	}
	if options.Duration <= 0 {
		options.Duration = defaults.Duration
	}
	if options.Count <= 0 {
		options.Count = defaults.Count
	}
	if options.ParticleSize <= 0 {
		options.ParticleSize = options.Size * 0.1
	}
	if options.Color == "" {
		options.Color = th.Accent.Highlight
	}

	motionRadius := options.Size * 0.75

	seeds := make([]particleSeed, options.Count)
	for i := range seeds {
		color := options.Color
		if color == ColorRandom {
			color = th.RandomColor(r)
		}

		seeds[i] = particleSeed{
			origin:    randomNumber(r, motionRadius*0.5, options.Size-motionRadius*0.5),
			direction: randomNumber(r, 0, 360) * math.Pi / 180,
			distance:  randomNumber(r, motionRadius*0.5, motionRadius),
			color:     color,
		}
	}

	return &Dissolve{
		options: options,
		seeds:   seeds,
	}
}

func (that *Dissolve) Duration() time.Duration {
	return that.options.Duration
}

func (that *Dissolve) Size() float64 {
	return that.options.Size
}

// Frame - particle positions and opacity after elapsed time.
func (that *Dissolve) Frame(elapsed time.Duration) Frame {
	progress := Progress(elapsed, that.options.Duration)
	alpha := 1 - math.Pow(progress, 3)

	particles := make([]Particle, len(that.seeds))
	for i, seed := range that.seeds {
		particles[i] = Particle{
			X:     seed.origin + math.Cos(seed.direction)*seed.distance*progress,
			Y:     seed.origin + math.Sin(seed.direction)*seed.distance*progress,
			Size:  that.options.ParticleSize,
			Alpha: alpha,
			Color: seed.color,
		}
	}

	return Frame{
		Elapsed:   elapsed,
		Progress:  progress,
		Particles: particles,
		Done:      elapsed >= that.options.Duration,
	}
}

// Progress - cubic ease-out of elapsed over duration, clamped to [0, 1].
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}

	t := math.Min(math.Max(float64(elapsed)/float64(duration), 0), 1)

	return 1 - math.Pow(1-t, 3)
}

// randomNumber - a whole number in [lo, hi].
func randomNumber(r Random, lo, hi float64) float64 {
	return math.Floor(r.Float64()*(hi-lo+1) + lo)
}
