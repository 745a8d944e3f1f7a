package sim

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/lifesim/internal/life"
)

// Runner owns a Simulation on a dedicated goroutine. All control methods are
// safe to call from other goroutines; each takes the same lock as the tick,
// so once Stop returns no further generation is produced.
type Runner struct {
	mu        sync.Mutex
	sim       *Simulation
	observers []Observer
	wake      chan struct{}
}

func NewRunner(s *Simulation) *Runner {
	return &Runner{sim: s, wake: make(chan struct{}, 1)}
}

// AddObserver registers o for every published generation. Call before Run.
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run ticks while the simulation is running and parks while it is stopped.
// A wake only steps when Start has opened an epoch that has not ticked yet,
// so a token left over from before Run or from a stop/start pair never
// shortens the current wait. It returns ctx.Err() once ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		stepped uint64
		ticked  bool
		step    = true
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer, fire = nil, nil
		}
	}
	defer stopTimer()

	for {
		if step {
			stopTimer()
			r.mu.Lock()
			epoch := r.sim.Epoch()
			delay, ok := r.sim.Tick(epoch)
			grid, gen := r.sim.Grid(), r.sim.Generation()
			r.mu.Unlock()

			if ok {
				stepped, ticked = epoch, true
				for _, o := range r.observers {
					o.OnStep(grid, gen)
				}
				log.Debug("tick", "generation", gen, "population", grid.Population(), "next", delay)
				timer = time.NewTimer(delay)
				fire = timer.C
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.wake:
			r.mu.Lock()
			step = r.sim.Running() && (!ticked || r.sim.Epoch() != stepped)
			r.mu.Unlock()
		case <-fire:
			timer, fire = nil, nil
			step = true
		}
	}
}

func (r *Runner) notify() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Start resumes ticking; the first generation follows without waiting.
func (r *Runner) Start() bool {
	r.mu.Lock()
	_, ok := r.sim.Start()
	r.mu.Unlock()
	if ok {
		r.notify()
	}
	return ok
}

func (r *Runner) Stop() {
	r.mu.Lock()
	r.sim.Stop()
	r.mu.Unlock()
}

func (r *Runner) Toggle() {
	r.mu.Lock()
	_, started := r.sim.Toggle()
	r.mu.Unlock()
	if started {
		r.notify()
	}
}

// SetSpeed changes the delay used for the next wait; a wait in progress keeps
// its original length.
func (r *Runner) SetSpeed(ms int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sim.SetSpeed(ms)
}

func (r *Runner) Clear() {
	r.mu.Lock()
	r.sim.Clear()
	r.mu.Unlock()
}

func (r *Runner) Randomize(rng *rand.Rand) {
	r.mu.Lock()
	r.sim.Randomize(rng)
	r.mu.Unlock()
}

func (r *Runner) ToggleCell(row, col int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sim.ToggleCell(row, col)
}

func (r *Runner) Load(g life.Grid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sim.Load(g)
}

func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sim.Snapshot()
}
