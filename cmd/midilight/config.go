package main

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

type conf struct {
	MidiIn             string      `yaml:"midiIn"`
	Channels           []uint8     `yaml:"channels"`
	TransitionMillis   int         `yaml:"transitionMillis"`
	SendIntervalMillis int         `yaml:"sendIntervalMillis"`
	Lightness          *rangeConf  `yaml:"lightness"`
	Kelvin             *kelvinConf `yaml:"kelvin"`
	Sinks              []sinkConf  `yaml:"sinks"`
}

type rangeConf struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type kelvinConf struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type sinkConf struct {
	Kind string `yaml:"kind"` // "homeassistant" or "osc"

	// homeassistant
	URL      string `yaml:"url"`
	Entity   string `yaml:"entity"`
	TokenEnv string `yaml:"tokenEnv"` // env var holding the bearer token

	// osc
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Address string `yaml:"address"`
}

// readConfig loads the optional YAML configuration. A missing file is not an
// error; flags and defaults cover everything.
func readConfig(path string) (*conf, error) {
	confBytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &conf{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	c := &conf{}
	if err := yaml.Unmarshal(confBytes, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}
	return c, nil
}
