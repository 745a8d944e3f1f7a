// Package life implements the Conway's Game of Life grid model.
//
// A [Grid] is a fixed-size matrix of alive/dead cells on a torus: the top
// edge is adjacent to the bottom edge and the left edge to the right edge.
// Grids are values. [Step], [Toggle] and [Place] return a new grid and leave
// their input untouched, so a caller holding the previous generation can keep
// reading it while the next one is built.
//
//   - [CountNeighbours]: live neighbours of a cell with wraparound
//   - [Step]: next generation under the B3/S23 rule
//   - [Randomize], [Clear]: fresh boards
//   - [Pattern]: named seed shapes (glider, pulsar, gosper-gun, ...)
//
// # Example
//
//	g := life.PlaceCentered(life.Clear(30, 50), life.MustPattern("glider"))
//	for i := 0; i < 4; i++ {
//	    g = life.Step(g)
//	}
package life
