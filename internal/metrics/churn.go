package metrics

import "github.com/san-kum/lifesim/internal/life"

// Churn is the mean number of cells that changed state per generation.
type Churn struct {
	name        string
	prev        []uint8
	changes     int
	transitions int
}

func NewChurn() *Churn {
	return &Churn{name: "churn"}
}

func (c *Churn) Name() string { return c.name }

func (c *Churn) Observe(g life.Grid, generation int) {
	cells := g.Cells()
	if c.prev != nil && len(c.prev) == len(cells) {
		for i := range cells {
			if cells[i] != c.prev[i] {
				c.changes++
			}
		}
		c.transitions++
	}
	c.prev = cells
}

func (c *Churn) Value() float64 {
	if c.transitions == 0 {
		return 0
	}
	return float64(c.changes) / float64(c.transitions)
}

func (c *Churn) Reset() {
	c.prev = nil
	c.changes = 0
	c.transitions = 0
}
