package anim

import (
	"encoding/binary"
	"math"
)

// FrameSubject is the rendered state of one subject.
type FrameSubject struct {
	ID      string  `json:"id"`
	R       uint8   `json:"r"`
	G       uint8   `json:"g"`
	B       uint8   `json:"b"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Opacity float64 `json:"opacity"`
	Visible bool    `json:"visible"`
}

// Frame represents one rendered snapshot of a stage, ready to send to an
// animrx display device.
type Frame struct {
	Subjects []FrameSubject `json:"subjects"`
}

// NewFrame creates a new Frame instance.
func NewFrame() *Frame {
	f := new(Frame)
	return f
}

// MarshalBinary converts a Frame into binary data. Layout: uint16 subject
// count, then per subject a length-prefixed id, RGB bytes, float32 x and y
// offsets, float32 opacity and a visibility byte. Little endian throughout.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 2, 2+len(f.Subjects)*24)
	binary.LittleEndian.PutUint16(data, uint16(len(f.Subjects)))
	for _, s := range f.Subjects {
		data = append(data, uint8(len(s.ID)))
		data = append(data, s.ID...)
		data = append(data, s.R, s.G, s.B)
		data = appendFloat32(data, s.X)
		data = appendFloat32(data, s.Y)
		data = appendFloat32(data, s.Opacity)
		if s.Visible {
			data = append(data, 1)
		} else {
			data = append(data, 0)
		}
	}

	return data, nil
}

func appendFloat32(data []byte, v float64) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
	return append(data, buf[:]...)
}
