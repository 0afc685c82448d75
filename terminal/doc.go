// Package terminal provides low-level terminal access for the runtime:
// raw mode acquisition, capability detection, ANSI output with style
// coalescing, and input parsing into events.
//
// The package is built around two interfaces. Backend abstracts the
// platform (a real Unix tty, or an in-memory implementation for tests).
// Terminal sits above it and owns the event channels, the output writer,
// and the lifecycle. All escape-sequence knowledge lives here; higher
// layers deal only in Cell grids and PaintCommands.
package terminal
