package sim

import (
	"time"

	"github.com/san-kum/lifesim/internal/life"
)

const (
	MinSpeedMs     = 50
	MaxSpeedMs     = 2000
	DefaultSpeedMs = 100
)

// ClampSpeed bounds an inter-tick delay in milliseconds to [MinSpeedMs, MaxSpeedMs].
func ClampSpeed(ms int) int {
	if ms < MinSpeedMs {
		return MinSpeedMs
	}
	if ms > MaxSpeedMs {
		return MaxSpeedMs
	}
	return ms
}

func speedDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

type Metric interface {
	Name() string
	Observe(g life.Grid, generation int)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(g life.Grid, generation int)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(g life.Grid, generation int)

func (f ObserverFunc) OnStep(g life.Grid, generation int) { f(g, generation) }

type Config struct {
	Generations int
	StopOnCycle bool
}

type Result struct {
	Final       life.Grid
	Populations []int
	Generations int
	// CycleStart is the first generation of the detected cycle and Period
	// its length. Period is 0 when no repeat was seen.
	CycleStart int
	Period     int
	Metrics    map[string]float64
}

// Snapshot is a consistent view of a simulation at one instant.
type Snapshot struct {
	Grid       life.Grid
	Generation int
	Running    bool
	SpeedMs    int
}
