package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gleibsonms/epg/internal/pkg/logging"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	defaultOutput      = "epg.xml"
	defaultWindowHours = 48
	defaultSlotMinutes = 60
	defaultUTCOffset   = -3
	defaultTitle       = "Programa Exemplo"
	defaultDesc        = "Sem informações no momento."
	defaultUserAgent   = "br-epg-generator/2.0"
	defaultTimeoutSecs = 60
)

type Config struct {
	Source string `yaml:"source,omitempty"` // playlist path or URL used when none is given on the command line

	Output      string `yaml:"output"`      // path of the generated XMLTV file
	WindowHours int    `yaml:"windowHours"` // guide coverage starting at generation time
	SlotMinutes int    `yaml:"slotMinutes"` // duration of each placeholder programme
	UTCOffset   int    `yaml:"utcOffset"`   // hours east of UTC used for programme timestamps
	Title       string `yaml:"title"`       // base title of placeholder programmes
	Desc        string `yaml:"desc"`        // description of placeholder programmes

	UserAgent      string `yaml:"userAgent"`      // User-Agent header sent when downloading playlists
	TimeoutSeconds int    `yaml:"timeoutSeconds"` // HTTP timeout for playlist downloads

	Log logging.LogConfig `yaml:"log"`
}

// Default returns a config with every field set to its default value.
func Default() *Config {
	return &Config{
		Output:         defaultOutput,
		WindowHours:    defaultWindowHours,
		SlotMinutes:    defaultSlotMinutes,
		UTCOffset:      defaultUTCOffset,
		Title:          defaultTitle,
		Desc:           defaultDesc,
		UserAgent:      defaultUserAgent,
		TimeoutSeconds: defaultTimeoutSecs,
		Log: logging.LogConfig{
			Level:  "info",
			Stdout: true,
		},
	}
}

func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if c.WindowHours < 1 {
		return fmt.Errorf("windowHours must be at least 1, got %d", c.WindowHours)
	}
	if c.SlotMinutes < 1 {
		return fmt.Errorf("slotMinutes must be at least 1, got %d", c.SlotMinutes)
	}
	if c.SlotMinutes > c.WindowHours*60 {
		return fmt.Errorf("slotMinutes %d exceeds the %dh window", c.SlotMinutes, c.WindowHours)
	}
	if c.UTCOffset < -12 || c.UTCOffset > 14 {
		return fmt.Errorf("utcOffset %d is outside the valid range [-12, 14]", c.UTCOffset)
	}

	logger := zap.L()

	// fix up the soft fields instead of failing
	if c.Title == "" {
		logger.Warn("The placeholder title is empty. Using the default.", zap.String("title", defaultTitle))
		c.Title = defaultTitle
	}
	if c.Desc == "" {
		logger.Warn("The placeholder description is empty. Using the default.", zap.String("desc", defaultDesc))
		c.Desc = defaultDesc
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.TimeoutSeconds < 1 {
		logger.Warn("The download timeout is not positive. Using the default.", zap.Int("timeoutSeconds", defaultTimeoutSecs))
		c.TimeoutSeconds = defaultTimeoutSecs
	}

	return nil
}

// Window is the guide coverage as a duration.
func (c *Config) Window() time.Duration {
	return time.Duration(c.WindowHours) * time.Hour
}

// SlotDuration is the placeholder programme length as a duration.
func (c *Config) SlotDuration() time.Duration {
	return time.Duration(c.SlotMinutes) * time.Minute
}

// Timeout is the playlist download timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func Load(fPath string) (*Config, error) {
	// omitted keys keep their default values
	data, err := os.ReadFile(fPath)
	if err != nil {
		return nil, err
	}
	config := Default()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

func CreateDefaultCfg(fPath string) error {
	f, err := os.Create(fPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)

	return encoder.Encode(Default())
}
