package metrics

import "github.com/san-kum/lifesim/internal/life"

type FinalPopulation struct {
	name  string
	value int
}

func NewFinalPopulation() *FinalPopulation {
	return &FinalPopulation{name: "final_population"}
}

func (f *FinalPopulation) Name() string { return f.name }

func (f *FinalPopulation) Observe(g life.Grid, generation int) {
	f.value = g.Population()
}

func (f *FinalPopulation) Value() float64 { return float64(f.value) }
func (f *FinalPopulation) Reset()         { f.value = 0 }

type PeakPopulation struct {
	name string
	peak int
}

func NewPeakPopulation() *PeakPopulation {
	return &PeakPopulation{name: "peak_population"}
}

func (p *PeakPopulation) Name() string { return p.name }

func (p *PeakPopulation) Observe(g life.Grid, generation int) {
	if n := g.Population(); n > p.peak {
		p.peak = n
	}
}

func (p *PeakPopulation) Value() float64 { return float64(p.peak) }
func (p *PeakPopulation) Reset()         { p.peak = 0 }

// MeanDensity is the average fraction of live cells over all observed generations.
type MeanDensity struct {
	name    string
	total   float64
	samples int
}

func NewMeanDensity() *MeanDensity {
	return &MeanDensity{name: "mean_density"}
}

func (m *MeanDensity) Name() string { return m.name }

func (m *MeanDensity) Observe(g life.Grid, generation int) {
	cells := g.Rows() * g.Cols()
	if cells == 0 {
		return
	}
	m.total += float64(g.Population()) / float64(cells)
	m.samples++
}

func (m *MeanDensity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanDensity) Reset() {
	m.total = 0
	m.samples = 0
}
