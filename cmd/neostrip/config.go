package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/callebjorkell/neostrip/internal/neopixel"
	"github.com/callebjorkell/neostrip/internal/ws281x"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = "neostrip.yaml"
	defaultBrightness = 128
	defaultVolts      = 5
)

type Config struct {
	Strips []struct {
		Pin    int    `yaml:"pin"`
		Count  int    `yaml:"count"`
		Type   string `yaml:"type"`
		Invert bool   `yaml:"invert"`
	} `yaml:"strips"`
	Brightness uint8 `yaml:"brightness"`
	Power      struct {
		Volts     uint8  `yaml:"volts"`
		Milliamps uint32 `yaml:"milliamps"`
	} `yaml:"power"`
	MaxRefreshRate int     `yaml:"maxRefreshRate"`
	Gamma          float64 `yaml:"gamma"`
}

var layoutNames = map[string]ws281x.Layout{
	"rgb":      ws281x.StripRGB,
	"rbg":      ws281x.StripRBG,
	"grb":      ws281x.StripGRB,
	"gbr":      ws281x.StripGBR,
	"brg":      ws281x.StripBRG,
	"bgr":      ws281x.StripBGR,
	"rgbw":     ws281x.StripRGBW,
	"grbw":     ws281x.StripGRBW,
	"neopixel": ws281x.StripNeoPixel,
	"ws2811":   ws281x.StripWS2811,
	"ws2812":   ws281x.StripWS2812,
	"sk6812":   ws281x.StripSK6812,
	"sk6812w":  ws281x.StripSK6812W,
}

// StripConfigs maps the configured strips onto controller strip configs.
// parseConfig has already validated the types, so unknown ones cannot occur
// here.
func (c Config) StripConfigs() []neopixel.StripConfig {
	configs := make([]neopixel.StripConfig, 0, len(c.Strips))
	for _, s := range c.Strips {
		configs = append(configs, neopixel.StripConfig{
			Pin:    s.Pin,
			Count:  s.Count,
			Layout: layoutNames[strings.ToLower(s.Type)],
			Invert: s.Invert,
		})
	}
	return configs
}

func readConfig(file string) (*Config, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}
	return parseConfig(content)
}

func parseConfig(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	if len(c.Strips) == 0 {
		return nil, fmt.Errorf("at least one strip must be configured")
	}
	for i, s := range c.Strips {
		if s.Pin == 0 {
			return nil, fmt.Errorf("pin must be specified for strip %d", i)
		}
		if s.Count <= 0 {
			return nil, fmt.Errorf("LED count must be specified for strip %d", i)
		}
		if s.Type == "" {
			c.Strips[i].Type = "neopixel"
			continue
		}
		if _, ok := layoutNames[strings.ToLower(s.Type)]; !ok {
			return nil, fmt.Errorf("unknown strip type %q for strip %d", s.Type, i)
		}
	}
	if c.Brightness == 0 {
		c.Brightness = defaultBrightness
	}
	if c.Power.Milliamps > 0 && c.Power.Volts == 0 {
		c.Power.Volts = defaultVolts
	}
	if c.Gamma < 0 {
		return nil, fmt.Errorf("gamma must be positive")
	}

	return c, nil
}
