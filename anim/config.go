package anim

// SubjectConfig describes one subject placed on the stage at startup.
type SubjectConfig struct {
	ID      string   `yaml:"id"`
	Colour  string   `yaml:"colour"`
	X       float64  `yaml:"x"`
	Y       float64  `yaml:"y"`
	Opacity *float64 `yaml:"opacity"` // nil means fully opaque
}

type Config struct {
	FrameRate float64 `yaml:"frameRate"`
	Api       struct {
		Addr string `yaml:"addr"`
	} `yaml:"api"`
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Animate string `yaml:"animate"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Stage struct {
		Background string          `yaml:"background"`
		Subjects   []SubjectConfig `yaml:"subjects"`
	} `yaml:"stage"`
}

// ApplyDefaults fills in the settings that may be omitted from the file.
func (c *Config) ApplyDefaults() {
	if c.FrameRate == 0 {
		c.FrameRate = 30
	}
	if c.Api.Addr == "" {
		c.Api.Addr = ":3000"
	}
	if c.Stage.Background == "" {
		c.Stage.Background = "#000000"
	}
}
