// Package history records navigation states for undo and redo.
//
// A History is a bounded list of States with a cursor. Pushing after an undo
// discards the states ahead of the cursor, the same way a text editor
// forgets its redo stack once the user types. A Session keeps one History
// and one saved view per fractal kind, so switching from Julia to
// Mandelbrot and back returns to the Julia view the user left.
//
// States are plain data and a Session encodes to JSON as-is, which lets a
// caller persist it between runs. This package never writes anything
// itself.
package history
