package anim

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// AnimateMessage is the JSON command clients publish to start or stop
// animations on stage subjects.
type AnimateMessage struct {
	Action    string  `json:"action"` // fade, crossfade, fadeshift, cancel, cancelall
	Subject   string  `json:"subject"`
	Secondary string  `json:"secondary,omitempty"`
	Kind      string  `json:"kind,omitempty"` // cancel only
	FadeTo    float64 `json:"fadeTo"`
	Step      float64 `json:"step"`
	ShiftFrom float64 `json:"shiftFrom"`
	ShiftTo   float64 `json:"shiftTo"`
	ShiftStep float64 `json:"shiftStep"`
	Axis      string  `json:"axis,omitempty"` // vertical (default) or horizontal
	DelayMs   int64   `json:"delayMs"`
}

// A Control subscribes for animation commands and feeds them to a Registry
// on the frame goroutine.
type Control struct {
	config   Config
	client   mqtt.Client
	driver   *Driver
	registry *Registry
	stage    *Stage
}

// NewControl creates an instance of a Control.
func NewControl(config Config, client mqtt.Client, driver *Driver, registry *Registry, stage *Stage) *Control {
	c := new(Control)
	c.config = config
	c.client = client
	c.driver = driver
	c.registry = registry
	c.stage = stage
	return c
}

// Subscribe starts listening for animation commands.
func (c *Control) Subscribe() {
	topic := c.config.Mqtt.Topics.Animate
	if token := c.client.Subscribe(topic, 0, c.handleMessage); token.Wait() && token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", topic).Msg("subscribe failed")
	}
}

func (c *Control) handleMessage(client mqtt.Client, msg mqtt.Message) {
	var m AnimateMessage
	if err := json.Unmarshal(msg.Payload(), &m); err != nil {
		log.Warn().Err(err).Str("topic", msg.Topic()).Msg("bad animate payload")
		return
	}

	// Registry work belongs on the frame goroutine.
	c.driver.Call(func() {
		if err := c.Apply(m); err != nil {
			log.Warn().Err(err).Str("action", m.Action).Str("subject", m.Subject).Msg("command rejected")
		}
	})
}

// Apply executes one command against the registry. It must run on the frame
// goroutine.
func (c *Control) Apply(m AnimateMessage) error {
	switch m.Action {
	case "cancel":
		c.registry.Cancel(Kind(m.Kind), m.Subject)
		return nil
	case "cancelall":
		c.registry.CancelAll(m.Subject)
		return nil
	}

	a, err := c.buildAnimation(m)
	if err != nil {
		return err
	}
	if m.DelayMs > 0 {
		return c.registry.SubmitAfter(time.Duration(m.DelayMs)*time.Millisecond, a)
	}
	return c.registry.Submit(a)
}

func (c *Control) buildAnimation(m AnimateMessage) (Animation, error) {
	subject, ok := c.stage.Subject(m.Subject)
	if !ok {
		return nil, fmt.Errorf("unknown subject %q", m.Subject)
	}

	switch m.Action {
	case "fade":
		return NewFade(subject, m.FadeTo, m.Step), nil
	case "crossfade":
		secondary, ok := c.stage.Subject(m.Secondary)
		if !ok {
			return nil, fmt.Errorf("unknown secondary subject %q", m.Secondary)
		}
		return NewCrossFade(subject, secondary, m.FadeTo, m.Step), nil
	case "fadeshift":
		axis := AxisVertical
		if m.Axis == "horizontal" {
			axis = AxisHorizontal
		}
		return NewFadeShift(subject, m.FadeTo, m.Step, m.ShiftFrom, m.ShiftTo, m.ShiftStep, axis), nil
	default:
		return nil, fmt.Errorf("unknown action %q", m.Action)
	}
}
