package anim

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// A Stage holds the subjects available for animation, in display order.
type Stage struct {
	background colorful.Color
	subjects   []*Subject
	index      map[string]*Subject
}

// NewStage creates an instance of a Stage with no subjects.
func NewStage(background colorful.Color) *Stage {
	g := new(Stage)
	g.background = background
	g.index = make(map[string]*Subject)
	return g
}

// BuildStage constructs a Stage from configuration.
func BuildStage(config Config) (*Stage, error) {
	background, err := colorful.Hex(config.Stage.Background)
	if err != nil {
		return nil, fmt.Errorf("stage background %q: %w", config.Stage.Background, err)
	}

	g := NewStage(background)
	for _, sc := range config.Stage.Subjects {
		colour, err := colorful.Hex(sc.Colour)
		if err != nil {
			return nil, fmt.Errorf("subject %q colour %q: %w", sc.ID, sc.Colour, err)
		}
		s := NewSubject(sc.ID, colour)
		s.OffsetX = sc.X
		s.OffsetY = sc.Y
		if sc.Opacity != nil {
			s.Opacity = *sc.Opacity
		}
		g.Add(s)
	}

	return g, nil
}

// Add appends a subject to the stage. A subject with a duplicate id replaces
// the previous index entry but both remain in display order.
func (g *Stage) Add(s *Subject) {
	g.subjects = append(g.subjects, s)
	g.index[s.ID()] = s
}

// Subject looks a subject up by id.
func (g *Stage) Subject(id string) (*Subject, bool) {
	s, ok := g.index[id]
	return s, ok
}

// Snapshot renders the current state of every subject into a Frame.
func (g *Stage) Snapshot() *Frame {
	f := NewFrame()
	for _, s := range g.subjects {
		colour := s.DisplayColour(g.background)
		r, gg, b := colour.Clamped().RGB255()
		f.Subjects = append(f.Subjects, FrameSubject{
			ID:      s.ID(),
			R:       r,
			G:       gg,
			B:       b,
			X:       s.OffsetX,
			Y:       s.OffsetY,
			Opacity: s.Opacity,
			Visible: s.Visible,
		})
	}
	return f
}
