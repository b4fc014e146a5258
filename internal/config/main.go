package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

const Version = "0.3.0"

type Config struct {
	Beatmap string `yaml:"-"`
	Profile string `yaml:"-"`

	Audio        string        `yaml:"audio"`
	TickRate     float64       `yaml:"tickRate"`
	Delay        time.Duration `yaml:"delay"`
	Database     string        `yaml:"database"`
	Headless     bool          `yaml:"headless"`
	Verbose      bool          `yaml:"verbose"`
	JumpDuration float64       `yaml:"jumpDuration"` // Seconds, 0 derives it from the beatmap
	Spacing      uint          `yaml:"spacing"`
	Keys         string        `yaml:"keys"`
}

// Pause, rewind and forward keys, in that order.
func (c *Config) Key(i int) rune {
	keys := []rune(c.Keys)
	if i < 0 || i >= len(keys) {
		return 0
	}
	return keys[i]
}

// TickPeriod is the time between two ticks.
func (c *Config) TickPeriod() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}

func newApplication(c *Config) *kingpin.Application {
	app := kingpin.New("noodle", "Plays back a beatmap's object and player animations.")
	app.Version(Version)
	app.Arg("beatmap", "Beatmap file").Required().ExistingFileVar(&c.Beatmap)
	app.Flag("audio", "Song audio, silent when empty").Short('a').ExistingFileVar(&c.Audio)
	app.Flag("profile", "YAML profile, its keys override flags").Short('P').ExistingFileVar(&c.Profile)
	app.Flag("tick-rate", "Ticks per second").Default("60").Short('t').Float64Var(&c.TickRate)
	app.Flag("delay", "Start delay").Default("1.5s").Short('d').DurationVar(&c.Delay)
	app.Flag("db", "Session history database").Default("./history.db").StringVar(&c.Database)
	app.Flag("headless", "Run without drawing or playing audio").BoolVar(&c.Headless)
	app.Flag("verbose", "Log every custom event").Short('v').BoolVar(&c.Verbose)
	app.Flag("jump-duration", "Jump duration override in seconds").Default("0").Short('j').Float64Var(&c.JumpDuration)
	app.Flag("spacing", "Columns between lanes").Default("6").Short('S').UintVar(&c.Spacing)
	app.Flag("keys", "Pause, rewind and forward keys").Default("prf").Short('k').StringVar(&c.Keys)
	return app
}

// Parse reads the command line, then the profile when one is given.
func Parse(args []string) (*Config, error) {
	c := &Config{}
	if _, err := newApplication(c).Parse(args); nil != err {
		return nil, err
	}
	if c.Profile != "" {
		data, err := os.ReadFile(c.Profile)
		if nil != err {
			return nil, fmt.Errorf("unable to read profile: %w", err)
		}
		if err := yaml.Unmarshal(data, c); nil != err {
			return nil, fmt.Errorf("unable to parse profile: %w", err)
		}
	}
	if c.TickRate <= 0 {
		return nil, errors.New("tick rate must be positive")
	}
	if len([]rune(c.Keys)) < 3 {
		return nil, errors.New("keys needs a pause, rewind and forward key")
	}
	return c, nil
}
