package terminal

import "github.com/gdamore/tcell/v2"

var (
	styleDefault  = tcell.StyleDefault
	styleHeader   = tcell.StyleDefault.Bold(true).Underline(true)
	styleActive   = tcell.StyleDefault.Reverse(true).Bold(true)
	styleCursor   = tcell.StyleDefault.Reverse(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDisabled = tcell.StyleDefault.Dim(true)
	styleButton   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleStatus   = tcell.StyleDefault.Reverse(true)
	styleDialog   = tcell.StyleDefault
	styleField    = tcell.StyleDefault.Underline(true)
	styleDanger   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)
