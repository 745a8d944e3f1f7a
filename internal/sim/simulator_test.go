package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/lifesim/internal/life"
)

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(g life.Grid, generation int) {
	t.count++
	t.sum += float64(g.Population())
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func TestSimulatorRun(t *testing.T) {
	g0 := life.Randomize(16, 16, life.NewRNG(5))
	s := New()

	result, err := s.Run(context.Background(), g0, Config{Generations: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Generations != 10 {
		t.Errorf("expected 10 generations, got %d", result.Generations)
	}
	if len(result.Populations) != 11 {
		t.Errorf("expected 11 populations, got %d", len(result.Populations))
	}

	want := g0
	for i := 0; i < 10; i++ {
		want = life.Step(want)
	}
	if !result.Final.Equal(want) {
		t.Error("final grid differs from ten manual steps")
	}
	if result.Populations[0] != g0.Population() {
		t.Errorf("population[0] = %d, want %d", result.Populations[0], g0.Population())
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New()
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero generations", Config{Generations: 0}},
		{"negative generations", Config{Generations: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), life.Clear(4, 4), tt.cfg)
			if !errors.Is(err, ErrInvalidGenerations) {
				t.Errorf("expected ErrInvalidGenerations, got %v", err)
			}
		})
	}
}

func TestSimulatorMetrics(t *testing.T) {
	s := New()
	metric := &testMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), life.Randomize(8, 8, life.NewRNG(1)), Config{Generations: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != result.Generations+1 {
		t.Errorf("expected %d observations, got %d", result.Generations+1, metric.count)
	}
}

func TestSimulatorObservers(t *testing.T) {
	s := New()
	var gens []int
	s.AddObserver(ObserverFunc(func(g life.Grid, generation int) {
		gens = append(gens, generation)
	}))

	if _, err := s.Run(context.Background(), life.Clear(5, 5), Config{Generations: 3}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(gens) != 4 || gens[0] != 0 || gens[3] != 3 {
		t.Errorf("observed generations %v, want [0 1 2 3]", gens)
	}
}

func TestSimulatorCycleDetection(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		size       int
		period     int
		cycleStart int
	}{
		{"block", "block", 8, 1, 0},
		{"blinker", "blinker", 8, 2, 0},
		{"glider", "glider", 8, 32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g0 := life.PlaceCentered(life.Clear(tt.size, tt.size), life.MustPattern(tt.pattern))
			result, err := New().Run(context.Background(), g0, Config{Generations: 200, StopOnCycle: true})
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if result.Period != tt.period {
				t.Errorf("period = %d, want %d", result.Period, tt.period)
			}
			if result.CycleStart != tt.cycleStart {
				t.Errorf("cycle start = %d, want %d", result.CycleStart, tt.cycleStart)
			}
			if result.Generations != tt.cycleStart+tt.period {
				t.Errorf("expected stop at generation %d, got %d", tt.cycleStart+tt.period, result.Generations)
			}
		})
	}
}

func TestSimulatorExtinctionIsCycle(t *testing.T) {
	g0, _ := life.Toggle(life.Clear(6, 6), 2, 2)
	result, err := New().Run(context.Background(), g0, Config{Generations: 50, StopOnCycle: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.CycleStart != 1 || result.Period != 1 {
		t.Errorf("expected empty fixed point from generation 1, got start=%d period=%d", result.CycleStart, result.Period)
	}
	if result.Final.Population() != 0 {
		t.Error("expected extinct final grid")
	}
}

func TestSimulatorWithoutStopRunsFull(t *testing.T) {
	g0 := life.PlaceCentered(life.Clear(8, 8), life.MustPattern("block"))
	result, err := New().Run(context.Background(), g0, Config{Generations: 20})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Generations != 20 {
		t.Errorf("expected 20 generations, got %d", result.Generations)
	}
	if result.Period != 1 {
		t.Errorf("expected period 1, got %d", result.Period)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New().Run(ctx, life.Clear(4, 4), Config{Generations: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.Generations != 0 {
		t.Errorf("expected partial result with no generations, got %+v", result)
	}
}

func TestEnsemble(t *testing.T) {
	e := NewEnsemble(12, 12, 6, 100, func() []Metric { return []Metric{&testMetric{}} })
	results, err := e.Run(context.Background(), Config{Generations: 15})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("result %d missing", i)
		}
		if _, ok := r.Metrics["test"]; !ok {
			t.Errorf("result %d has no metric", i)
		}
		g0 := life.Randomize(12, 12, life.NewRNG(e.Seed(i)))
		if r.Populations[0] != g0.Population() {
			t.Errorf("result %d did not start from its seed", i)
		}
	}
}

func TestEnsembleInvalid(t *testing.T) {
	if _, err := NewEnsemble(4, 4, 0, 0, nil).Run(context.Background(), Config{Generations: 1}); !errors.Is(err, ErrInvalidEnsemble) {
		t.Errorf("expected ErrInvalidEnsemble, got %v", err)
	}
	if _, err := NewEnsemble(4, 4, 2, 0, nil).Run(context.Background(), Config{}); !errors.Is(err, ErrInvalidGenerations) {
		t.Errorf("expected ErrInvalidGenerations, got %v", err)
	}
}
