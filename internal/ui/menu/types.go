// Package menu lays out the demo overlay from widgets.
package menu

type Action int

const (
	ActionNone Action = iota
	ActionQuit
)
