package main

import (
	"flag"
	"os"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/animtx/anim"
	"github.com/matt-g-everett/animtx/api"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

type app struct {
	Config   anim.Config
	Client   mqtt.Client
	Driver   *anim.Driver
	Registry *anim.Registry
	Stage    *anim.Stage
	Streamer *anim.Streamer
	Control  *anim.Control
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Info().Msg("connected")
	a.Control.Subscribe()
}

func (a *app) run() {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect failed")
	}
	a.Driver.Run()
}

func (a *app) readConfig(configPath string) {
	f, err := os.Open(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("config open failed")
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err = decoder.Decode(&a.Config); err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("config parse failed")
	}
	a.Config.ApplyDefaults()
}

func setupLogging(verbosity int) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	log.Logger = zerolog.New(console).With().Timestamp().Logger()
}

func main() {
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	verbosity := flag.Int("v", 0, "Logging verbosity.")
	flag.Parse()

	setupLogging(*verbosity)

	a := newApp()
	a.readConfig(*configPath)
	log.Debug().Interface("config", a.Config).Msg("config loaded")

	stage, err := anim.BuildStage(a.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("stage build failed")
	}
	a.Stage = stage

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID("animtx").
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	a.Driver = anim.NewDriver(a.Config.FrameRate)
	a.Registry = anim.NewRegistry(a.Driver)
	a.Streamer = anim.NewStreamer(a.Config, a.Client, a.Stage)
	a.Control = anim.NewControl(a.Config, a.Client, a.Driver, a.Registry, a.Stage)
	a.Driver.OnFrame = a.Streamer.SendFrame

	go api.NewApi(a.Config.Api.Addr, a.Driver, a.Registry, a.Stage).Serve()

	a.run()
}
