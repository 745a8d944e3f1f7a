package sim

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifesim/internal/life"
)

var _ = Describe("Pacer", func() {
	var (
		s     *Simulation
		p     *Pacer
		start time.Time
	)

	BeforeEach(func() {
		s = NewSimulationFrom(life.PlaceCentered(life.Clear(9, 9), life.MustPattern("blinker")))
		p = NewPacer(s)
		start = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	})

	It("does nothing while stopped", func() {
		Expect(p.Poll(start)).To(BeFalse())
		Expect(s.Generation()).To(Equal(0))
	})

	It("steps immediately on start and then waits one interval", func() {
		p.Start(start)
		Expect(p.Poll(start)).To(BeTrue())
		Expect(s.Generation()).To(Equal(1))

		Expect(p.Poll(start.Add(99 * time.Millisecond))).To(BeFalse())
		Expect(p.Poll(start.Add(100 * time.Millisecond))).To(BeTrue())
		Expect(s.Generation()).To(Equal(2))
	})

	It("steps at most once per deadline however late the poll", func() {
		p.Start(start)
		Expect(p.Poll(start)).To(BeTrue())
		late := start.Add(time.Second)
		Expect(p.Poll(late)).To(BeTrue())
		Expect(p.Poll(late)).To(BeFalse())
		Expect(s.Generation()).To(Equal(2))
	})

	It("uses the speed in effect when each wait begins", func() {
		p.Start(start)
		p.Poll(start)
		s.SetSpeed(500)
		Expect(p.Poll(start.Add(100 * time.Millisecond))).To(BeTrue())
		Expect(p.Next()).To(Equal(start.Add(600 * time.Millisecond)))
		Expect(p.Poll(start.Add(599 * time.Millisecond))).To(BeFalse())
		Expect(p.Poll(start.Add(600 * time.Millisecond))).To(BeTrue())
	})

	It("stops producing generations after stop", func() {
		p.Start(start)
		p.Poll(start)
		p.Toggle(start)
		Expect(s.Running()).To(BeFalse())
		Expect(p.Poll(start.Add(time.Hour))).To(BeFalse())
		Expect(s.Generation()).To(Equal(1))
	})

	It("restarts with an immediate step", func() {
		p.Start(start)
		p.Poll(start)
		p.Stop()
		restart := start.Add(10 * time.Millisecond)
		p.Toggle(restart)
		Expect(p.Poll(restart)).To(BeTrue())
		Expect(s.Generation()).To(Equal(2))
	})
})
