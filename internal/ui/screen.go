// Package ui draws the world onto a terminal through tcell.
package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Screen wraps tcell.Screen with the handful of calls the game needs.
type Screen struct {
	screen tcell.Screen
	once   sync.Once
}

// NewScreen creates and initializes a terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return Attach(s)
}

// Attach initializes an existing tcell screen, such as a simulation screen.
func Attach(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close restores terminal state. Safe to call more than once.
func (s *Screen) Close() {
	s.once.Do(s.screen.Fini)
}

// PollEvent waits for the next terminal event. It returns nil once the
// screen is closed.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// Sync forces a complete redraw of the terminal.
func (s *Screen) Sync() {
	s.screen.Sync()
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// SetContent puts one grapheme cluster at (x, y).
func (s *Screen) SetContent(x, y int, cluster string, style tcell.Style) {
	runes := []rune(cluster)
	if len(runes) == 0 {
		runes = []rune{' '}
	}
	s.screen.SetContent(x, y, runes[0], runes[1:], style)
}
