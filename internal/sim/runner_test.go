package sim

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifesim/internal/life"
)

type recorder struct {
	mu   sync.Mutex
	gens []int
}

func (r *recorder) OnStep(g life.Grid, generation int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gens = append(r.gens, generation)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.gens)
}

var _ = Describe("Runner", func() {
	var (
		r      *Runner
		rec    *recorder
		cancel context.CancelFunc
		done   chan error
	)

	BeforeEach(func() {
		g := life.PlaceCentered(life.Clear(12, 12), life.MustPattern("glider"))
		r = NewRunner(NewSimulationFrom(g))
		r.SetSpeed(MinSpeedMs)
		rec = &recorder{}
		r.AddObserver(rec)

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		done = make(chan error, 1)
		go func() { done <- r.Run(ctx) }()
	})

	AfterEach(func() {
		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})

	It("stays idle until started", func() {
		Consistently(func() int { return r.Snapshot().Generation }, 200*time.Millisecond, 20*time.Millisecond).Should(Equal(0))
	})

	It("steps immediately on start", func() {
		r.SetSpeed(MaxSpeedMs)
		Expect(r.Start()).To(BeTrue())
		Eventually(func() int { return r.Snapshot().Generation }, 500*time.Millisecond).Should(Equal(1))
	})

	It("keeps ticking while running and notifies observers", func() {
		r.Start()
		Eventually(rec.count, 2*time.Second).Should(BeNumerically(">=", 3))
		snap := r.Snapshot()
		Expect(snap.Running).To(BeTrue())
		Expect(snap.Generation).To(BeNumerically(">=", 3))
	})

	It("produces no generation after stop returns", func() {
		r.Start()
		Eventually(func() int { return r.Snapshot().Generation }, 2*time.Second).Should(BeNumerically(">=", 2))
		r.Stop()
		stopped := r.Snapshot().Generation
		Consistently(func() int { return r.Snapshot().Generation }, 300*time.Millisecond, 25*time.Millisecond).Should(Equal(stopped))
	})

	It("does not tick faster than the interval", func() {
		r.SetSpeed(400)
		r.Start()
		Eventually(func() int { return r.Snapshot().Generation }, time.Second).Should(Equal(1))
		Consistently(func() int { return r.Snapshot().Generation }, 250*time.Millisecond, 25*time.Millisecond).Should(Equal(1))
	})

	It("applies grid actions under the same lock", func() {
		r.Clear()
		Expect(r.ToggleCell(3, 4)).To(Succeed())
		Expect(r.Snapshot().Grid.Alive(3, 4)).To(BeTrue())
		Expect(r.ToggleCell(-1, 0)).To(MatchError(life.ErrOutOfBounds))
		Expect(r.Load(life.Clear(3, 3))).To(MatchError(ErrDimensionMismatch))

		r.Randomize(life.NewRNG(8))
		Expect(r.Snapshot().Grid.Population()).To(BeNumerically(">", 0))
		Expect(r.SetSpeed(1)).To(Equal(MinSpeedMs))
	})

	It("uses a new speed from the next wait on", func() {
		r.SetSpeed(600)
		r.Start()
		Eventually(func() int { return r.Snapshot().Generation }, time.Second).Should(Equal(1))
		r.SetSpeed(MinSpeedMs)
		Consistently(func() int { return r.Snapshot().Generation }, 300*time.Millisecond, 25*time.Millisecond).Should(Equal(1))
		Eventually(func() int { return r.Snapshot().Generation }, 1500*time.Millisecond).Should(BeNumerically(">=", 4))
	})

	It("toggles between running and stopped", func() {
		r.Toggle()
		Expect(r.Snapshot().Running).To(BeTrue())
		r.Toggle()
		Expect(r.Snapshot().Running).To(BeFalse())
	})
})

var _ = Describe("Runner control before and during a step", func() {
	var r *Runner

	BeforeEach(func() {
		g := life.PlaceCentered(life.Clear(12, 12), life.MustPattern("glider"))
		r = NewRunner(NewSimulationFrom(g))
		r.SetSpeed(MaxSpeedMs)
	})

	run := func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- r.Run(ctx) }()
		DeferCleanup(func() {
			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
		})
	}

	It("steps once and then waits the full interval when started before Run", func() {
		Expect(r.Start()).To(BeTrue())
		run()

		Eventually(func() int { return r.Snapshot().Generation }, 500*time.Millisecond).Should(Equal(1))
		Consistently(func() int { return r.Snapshot().Generation }, 300*time.Millisecond, 25*time.Millisecond).Should(Equal(1))
	})

	It("restarts once when stopped and started while an observer is busy", func() {
		entered := make(chan struct{}, 1)
		release := make(chan struct{})
		r.AddObserver(ObserverFunc(func(_ life.Grid, gen int) {
			if gen == 1 {
				entered <- struct{}{}
				<-release
			}
		}))
		run()
		r.Start()
		Eventually(entered).Should(Receive())
		r.Stop()
		r.Start()
		close(release)

		Eventually(func() int { return r.Snapshot().Generation }, 500*time.Millisecond).Should(Equal(2))
		Consistently(func() int { return r.Snapshot().Generation }, 300*time.Millisecond, 25*time.Millisecond).Should(Equal(2))
	})
})
