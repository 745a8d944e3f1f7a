// Package gui is the desktop frontend: a raylib window with a clickable
// grid, start/stop, step, clear and random buttons, and a speed slider.
//
// The window loop polls a [sim.Pacer] once per frame, so the simulation and
// all input handling share one goroutine.
package gui
