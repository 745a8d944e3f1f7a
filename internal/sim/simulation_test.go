package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/san-kum/lifesim/internal/life"
)

func TestClampSpeed(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-10, MinSpeedMs},
		{0, MinSpeedMs},
		{49, MinSpeedMs},
		{50, 50},
		{100, 100},
		{2000, 2000},
		{2001, MaxSpeedMs},
		{1 << 20, MaxSpeedMs},
	}
	for _, tt := range tests {
		if got := ClampSpeed(tt.in); got != tt.want {
			t.Errorf("ClampSpeed(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewSimulationDefaults(t *testing.T) {
	s := NewSimulation(10, 12)
	if s.Running() {
		t.Error("expected stopped at creation")
	}
	if s.SpeedMs() != DefaultSpeedMs {
		t.Errorf("expected speed %d, got %d", DefaultSpeedMs, s.SpeedMs())
	}
	if s.Speed() != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", s.Speed())
	}
	g := s.Grid()
	if g.Rows() != 10 || g.Cols() != 12 || g.Population() != 0 {
		t.Errorf("expected empty 10x12 grid, got %dx%d pop %d", g.Rows(), g.Cols(), g.Population())
	}
}

func TestTickWhileStopped(t *testing.T) {
	s := NewSimulationFrom(life.Randomize(8, 8, life.NewRNG(2)))
	before := s.Grid()
	if _, ok := s.Tick(s.Epoch()); ok {
		t.Error("tick must not run while stopped")
	}
	if !s.Grid().Equal(before) || s.Generation() != 0 {
		t.Error("stopped tick mutated the grid")
	}
}

func TestTickAdvances(t *testing.T) {
	g0 := life.Randomize(8, 8, life.NewRNG(3))
	s := NewSimulationFrom(g0)
	epoch, started := s.Start()
	if !started {
		t.Fatal("expected start")
	}

	delay, ok := s.Tick(epoch)
	if !ok {
		t.Fatal("expected tick to run")
	}
	if delay != s.Speed() {
		t.Errorf("delay %v, want %v", delay, s.Speed())
	}
	if !s.Grid().Equal(life.Step(g0)) {
		t.Error("tick did not publish the next generation")
	}
	if s.Generation() != 1 {
		t.Errorf("expected generation 1, got %d", s.Generation())
	}
}

func TestTickReadsLiveSpeed(t *testing.T) {
	s := NewSimulation(5, 5)
	epoch, _ := s.Start()
	if d, _ := s.Tick(epoch); d != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", d)
	}
	s.SetSpeed(750)
	if d, _ := s.Tick(epoch); d != 750*time.Millisecond {
		t.Errorf("expected new speed to apply to next wait, got %v", d)
	}
	s.SetSpeed(10)
	if d, _ := s.Tick(epoch); d != MinSpeedMs*time.Millisecond {
		t.Errorf("expected clamped speed, got %v", d)
	}
}

func TestStopEndsChain(t *testing.T) {
	s := NewSimulation(5, 5)
	epoch, _ := s.Start()
	s.Tick(epoch)
	s.Stop()
	if _, ok := s.Tick(epoch); ok {
		t.Error("tick after stop must end the chain")
	}
	if s.Generation() != 1 {
		t.Errorf("expected generation 1 after stop, got %d", s.Generation())
	}
}

func TestStaleEpochIgnored(t *testing.T) {
	s := NewSimulation(5, 5)
	old, _ := s.Start()
	s.Stop()
	current, started := s.Start()
	if !started || current == old {
		t.Fatalf("expected a new epoch, got %d after %d", current, old)
	}
	if _, ok := s.Tick(old); ok {
		t.Error("stale tick must be dropped")
	}
	if _, ok := s.Tick(current); !ok {
		t.Error("current tick must run")
	}
	if s.Generation() != 1 {
		t.Errorf("expected exactly one generation, got %d", s.Generation())
	}
}

func TestStartWhileRunning(t *testing.T) {
	s := NewSimulation(5, 5)
	first, _ := s.Start()
	again, started := s.Start()
	if started {
		t.Error("second start must be a no-op")
	}
	if again != first {
		t.Errorf("epoch changed from %d to %d", first, again)
	}
}

func TestToggle(t *testing.T) {
	s := NewSimulation(5, 5)
	if _, started := s.Toggle(); !started || !s.Running() {
		t.Fatal("expected toggle to start")
	}
	if _, started := s.Toggle(); started || s.Running() {
		t.Fatal("expected toggle to stop")
	}
}

func TestStepOnce(t *testing.T) {
	g0 := life.PlaceCentered(life.Clear(7, 7), life.MustPattern("blinker"))
	s := NewSimulationFrom(g0)
	if !s.StepOnce() {
		t.Fatal("expected manual step while stopped")
	}
	if !s.Grid().Equal(life.Step(g0)) {
		t.Error("manual step produced wrong grid")
	}
	s.Start()
	if s.StepOnce() {
		t.Error("manual step must be refused while running")
	}
}

func TestGridActions(t *testing.T) {
	s := NewSimulation(6, 6)
	s.Randomize(life.NewRNG(4))
	if s.Grid().Population() == 0 {
		t.Error("expected live cells after randomize")
	}
	s.StepOnce()
	s.Clear()
	if s.Grid().Population() != 0 || s.Generation() != 0 {
		t.Error("clear must empty the grid and reset the generation")
	}

	if err := s.ToggleCell(1, 2); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !s.Grid().Alive(1, 2) {
		t.Error("expected toggled cell alive")
	}
	if err := s.ToggleCell(6, 0); !errors.Is(err, life.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	s := NewSimulation(6, 6)
	if err := s.Load(life.Clear(5, 6)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	g := life.PlaceCentered(life.Clear(6, 6), life.MustPattern("glider"))
	if err := s.Load(g); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !s.Grid().Equal(g) {
		t.Error("loaded grid not current")
	}
}
