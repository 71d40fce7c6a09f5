// Package app runs an editor in a terminal. It maps terminal keys, mouse
// gestures and bracketed paste onto editor operations, and draws the laid
// out document into terminal cells.
//
// One terminal cell stands for a fixed number of layout pixels, derived
// from the configured font size and cell ratio, and one terminal row stands
// for one document line.
package app
