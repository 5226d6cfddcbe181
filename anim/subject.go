package anim

import (
	"github.com/lucasb-eyer/go-colorful"
)

// A Subject is an addressable visual element that animations mutate. The id
// is caller-assigned and must be non-empty and stable; uniqueness across
// live subjects is the caller's responsibility.
type Subject struct {
	id string

	Colour  colorful.Color
	Opacity float64
	OffsetX float64
	OffsetY float64
	Visible bool
}

// NewSubject creates an instance of a Subject, fully opaque and visible.
func NewSubject(id string, colour colorful.Color) *Subject {
	s := new(Subject)
	s.id = id
	s.Colour = colour
	s.Opacity = 1.0
	s.Visible = true
	return s
}

// ID returns the subject's stable identifier.
func (s *Subject) ID() string {
	return s.id
}

// DisplayColour renders the subject against a background: the background
// blended toward the subject's colour by its opacity. Hidden subjects render
// as pure background.
func (s *Subject) DisplayColour(background colorful.Color) colorful.Color {
	if !s.Visible {
		return background
	}
	opacity := s.Opacity
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	return background.BlendHcl(s.Colour, opacity)
}
