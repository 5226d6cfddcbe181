package anim

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

const testConfigYaml = `
frameRate: 60
mqtt:
  url: tcp://broker:1883
  topics:
    stream: home/display/stream
    animate: home/display/animate
stage:
  background: "#100505"
  subjects:
    - id: title
      colour: "#808080"
      x: 10
      y: 20
    - id: ghost
      colour: "#404040"
      opacity: 0.25
`

func TestBuildStageFromConfig(t *testing.T) {
	var config Config
	require.NoError(t, yaml.Unmarshal([]byte(testConfigYaml), &config))
	config.ApplyDefaults()

	assert.Equal(t, 60.0, config.FrameRate)
	assert.Equal(t, ":3000", config.Api.Addr, "api addr defaults when omitted")

	stage, err := BuildStage(config)
	require.NoError(t, err)

	title, ok := stage.Subject("title")
	require.True(t, ok)
	assert.Equal(t, 10.0, title.OffsetX)
	assert.Equal(t, 20.0, title.OffsetY)
	assert.Equal(t, 1.0, title.Opacity, "opacity defaults to opaque")

	ghost, ok := stage.Subject("ghost")
	require.True(t, ok)
	assert.Equal(t, 0.25, ghost.Opacity)

	_, ok = stage.Subject("missing")
	assert.False(t, ok)
}

func TestBuildStageRejectsBadColour(t *testing.T) {
	var config Config
	config.ApplyDefaults()
	config.Stage.Subjects = []SubjectConfig{{ID: "x", Colour: "not-a-colour"}}

	_, err := BuildStage(config)
	require.Error(t, err)
}

func TestSnapshotRendersHiddenSubjectsAsBackground(t *testing.T) {
	background := colourOrDie("#100505")
	stage := NewStage(background)

	s := NewSubject("panel", colourOrDie("#808080"))
	s.Visible = false
	s.OffsetX = 3
	s.OffsetY = 4
	stage.Add(s)

	f := stage.Snapshot()
	require.Len(t, f.Subjects, 1)

	br, bg, bb := background.Clamped().RGB255()
	got := f.Subjects[0]
	assert.Equal(t, "panel", got.ID)
	assert.Equal(t, br, got.R)
	assert.Equal(t, bg, got.G)
	assert.Equal(t, bb, got.B)
	assert.Equal(t, 3.0, got.X)
	assert.Equal(t, 4.0, got.Y)
	assert.False(t, got.Visible)
}

func TestFrameMarshalBinary(t *testing.T) {
	stage := NewStage(colourOrDie("#000000"))
	stage.Add(NewSubject("ab", colourOrDie("#808080")))
	stage.Add(NewSubject("c", colourOrDie("#404040")))

	f := stage.Snapshot()
	data, err := f.MarshalBinary()
	require.NoError(t, err)

	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(data))

	// Per subject: 1 id-length byte, id, 3 colour bytes, 3 float32s, 1
	// visibility byte.
	want := 2 + (1 + 2 + 3 + 12 + 1) + (1 + 1 + 3 + 12 + 1)
	assert.Len(t, data, want)

	assert.Equal(t, uint8(2), data[2])
	assert.Equal(t, "ab", string(data[3:5]))
}
