package anim

import (
	"github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// A Streamer publishes rendered stage frames as binary over MQTT to an
// animrx display device.
type Streamer struct {
	config Config
	client mqtt.Client
	stage  *Stage
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client, stage *Stage) *Streamer {
	s := new(Streamer)
	s.config = config
	s.client = client
	s.stage = stage
	return s
}

// SendFrame renders the stage and publishes the snapshot. Wire this to
// Driver.OnFrame so a frame goes out after every animation step.
func (s *Streamer) SendFrame() {
	f := s.stage.Snapshot()
	b, _ := f.MarshalBinary()
	token := s.client.Publish(s.config.Mqtt.Topics.Stream, 0, false, b)
	if token.Wait() && token.Error() != nil {
		log.Error().Err(token.Error()).Msg("frame publish failed")
	}
}
