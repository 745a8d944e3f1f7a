package sim

import "errors"

var (
	// ErrInvalidGenerations indicates a non-positive generation budget.
	ErrInvalidGenerations = errors.New("sim: generations must be positive")

	// ErrDimensionMismatch indicates a grid whose size differs from the simulation's.
	ErrDimensionMismatch = errors.New("sim: grid dimensions do not match")

	// ErrInvalidEnsemble indicates an ensemble with no runs.
	ErrInvalidEnsemble = errors.New("sim: ensemble needs at least one run")
)
