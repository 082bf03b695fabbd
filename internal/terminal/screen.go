// Package terminal implements a window.Window on a tcell terminal screen.
//
// The window shows a tab bar, one table per tab with a row of buttons, a
// popup menu per table and a status line. Keyboard and mouse input becomes
// window events; events posted by handlers and long operations are queued
// and read in order with the input.
package terminal

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Screen is a mutex protected tcell screen with text helpers.
type Screen struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewScreen creates a screen on the controlling terminal.
func NewScreen() (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Screen{screen: screen}, nil
}

// NewScreenFrom wraps an existing tcell screen, e.g. a simulation screen.
func NewScreenFrom(screen tcell.Screen) *Screen {
	return &Screen{screen: screen}
}

func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.EnableMouse()
	s.screen.HideCursor()
	return nil
}

func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Fini()
}

func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.screen.Size()
}

func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Clear()
}

func (s *Screen) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Show()
}

func (s *Screen) Sync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Sync()
}

// PollEvent blocks for the next terminal event. It returns nil once the
// screen is finalized.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// DrawText draws text at (x, y), clipped to width cells, and returns the
// number of cells used.
func (s *Screen) DrawText(x, y, width int, style tcell.Style, text string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw, sh := s.screen.Size()
	if y < 0 || y >= sh {
		return 0
	}
	n := 0
	for _, r := range text {
		if n >= width || x+n >= sw {
			break
		}
		if r == '\n' || r == '\t' {
			r = ' '
		}
		if x+n >= 0 {
			s.screen.SetContent(x+n, y, r, nil, style)
		}
		n++
	}
	return n
}

// Fill sets every cell of the rectangle to r.
func (s *Screen) Fill(x, y, width, height int, r rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw, sh := s.screen.Size()
	for row := y; row < y+height && row < sh; row++ {
		for col := x; col < x+width && col < sw; col++ {
			if row >= 0 && col >= 0 {
				s.screen.SetContent(col, row, r, nil, style)
			}
		}
	}
}

// Box draws a bordered box with title and clears its inside.
func (s *Screen) Box(x, y, width, height int, style tcell.Style, title string) {
	if width < 2 || height < 2 {
		return
	}
	s.Fill(x, y, width, height, ' ', style)
	s.Fill(x+1, y, width-2, 1, tcell.RuneHLine, style)
	s.Fill(x+1, y+height-1, width-2, 1, tcell.RuneHLine, style)
	s.Fill(x, y+1, 1, height-2, tcell.RuneVLine, style)
	s.Fill(x+width-1, y+1, 1, height-2, tcell.RuneVLine, style)
	s.Fill(x, y, 1, 1, tcell.RuneULCorner, style)
	s.Fill(x+width-1, y, 1, 1, tcell.RuneURCorner, style)
	s.Fill(x, y+height-1, 1, 1, tcell.RuneLLCorner, style)
	s.Fill(x+width-1, y+height-1, 1, 1, tcell.RuneLRCorner, style)
	if title != "" {
		s.DrawText(x+2, y, width-4, style.Bold(true), " "+title+" ")
	}
}

// Line returns the text shown on row y, with trailing blanks removed.
func (s *Screen) Line(y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, _ := s.screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

// Contents returns every line of the screen joined by newlines.
func (s *Screen) Contents() string {
	_, h := s.Size()
	lines := make([]string, h)
	for y := range lines {
		lines[y] = s.Line(y)
	}
	return strings.Join(lines, "\n")
}
