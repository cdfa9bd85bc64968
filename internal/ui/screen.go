package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/diegok/pongish/internal/game"
)

type Screen struct {
	screen tcell.Screen
}

func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

func InitScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.HideCursor()
	return NewScreen(s), nil
}

func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

func (s *Screen) Clear() {
	s.screen.Clear()
}

func (s *Screen) Show() {
	s.screen.Show()
}

// Sync repaints the whole terminal, used after a resize.
func (s *Screen) Sync() {
	s.screen.Sync()
}

func (s *Screen) Fini() {
	s.screen.Fini()
}

func (s *Screen) SetCell(x, y int, style tcell.Style, r rune) {
	s.screen.SetContent(x, y, r, nil, style)
}

func (s *Screen) DrawText(x, y int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		s.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func (s *Screen) FillRect(x, y, w, h int, style tcell.Style, r rune) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			s.screen.SetContent(x+dx, y+dy, r, nil, style)
		}
	}
}

// DrawVerticalLine fills column x from y1 to y2 inclusive. With step > 1
// only every step-th cell is drawn.
func (s *Screen) DrawVerticalLine(x, y1, y2, step int, style tcell.Style, r rune) {
	if step < 1 {
		step = 1
	}
	for y := y1; y <= y2; y += step {
		s.screen.SetContent(x, y, r, nil, style)
	}
}

func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// ToColor converts a game color to a terminal true color.
func ToColor(c game.Color) tcell.Color {
	return tcell.NewHexColor(c.RGB())
}

// Style draws fg on bg.
func Style(fg, bg game.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(ToColor(fg)).Background(ToColor(bg))
}
