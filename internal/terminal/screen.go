// Package terminal provides the character-grid display the animation draws on.
package terminal

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/wirespin/internal/logger"
	"github.com/Faultbox/wirespin/internal/render"
)

// Screen wraps a tcell screen as a render.Grid with buffered output.
type Screen struct {
	screen tcell.Screen
	style  tcell.Style
	keys   chan struct{}
	close  sync.Once
}

// Open initializes the controlling terminal.
func Open() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return New(s)
}

// New initializes s and takes ownership of it.
func New(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	s.HideCursor()
	s.Clear()

	w, h := s.Size()
	logger.Debug("terminal initialized", zap.Int("width", w), zap.Int("height", h))

	return &Screen{
		screen: s,
		style:  tcell.StyleDefault,
		keys:   make(chan struct{}, 1),
	}, nil
}

// Size returns the terminal size in cells.
func (t *Screen) Size() (width, height int) {
	return t.screen.Size()
}

// Viewport returns the centre used for projected geometry.
func (t *Screen) Viewport() render.Viewport {
	return render.ViewportFor(t.Size())
}

// SetCell implements render.Grid. Cells outside the terminal are dropped.
func (t *Screen) SetCell(row, col int, r rune) {
	t.screen.SetContent(col, row, r, nil, t.style)
}

// Clear blanks the back buffer.
func (t *Screen) Clear() {
	t.screen.Clear()
}

// Show flushes the back buffer to the terminal.
func (t *Screen) Show() {
	t.screen.Show()
}

// Watch polls terminal events on a separate goroutine until the screen is
// closed. Escape, q and Ctrl-C call cancel; every key press also wakes WaitKey.
func (t *Screen) Watch(cancel context.CancelFunc) {
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}

			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuitKey(ev) {
					logger.Debug("quit key pressed")
					cancel()
				}
				select {
				case t.keys <- struct{}{}:
				default:
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		}
	}()
}

// WaitKey blocks until a key is pressed after the call or ctx is done.
// It needs Watch to be running.
func (t *Screen) WaitKey(ctx context.Context) error {
	select {
	case <-t.keys:
	default:
	}

	select {
	case <-t.keys:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close restores the terminal. It is safe to call more than once.
func (t *Screen) Close() {
	t.close.Do(func() {
		t.screen.Fini()
	})
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
