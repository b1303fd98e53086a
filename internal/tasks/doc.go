// Package tasks reconstructs the main-thread task forest from a Chrome trace.
//
// Build runs a fixed pipeline over one trace:
//   - select the primary thread's Begin/End/Complete events
//   - nest them into a forest with a single stack walk
//   - compute duration and self-time (post-order)
//   - propagate the attributable URL down from the nearest resolving ancestor
//   - propagate the category group the same way
//   - rebase times to the first root's start, in milliseconds
//
// Tasks live in a flat arena addressed by index; parent and children are
// indices into it. A Forest is immutable once Build returns it.
package tasks
