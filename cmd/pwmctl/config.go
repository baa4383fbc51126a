//go:build linux

package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pca9685-go/drivers/pca9685"
)

// Config describes one chip and the channel settings to apply to it.
type Config struct {
	Bus         string  `yaml:"bus"`          // I2C adapter path; default /dev/i2c-1
	Address     uint16  `yaml:"address"`      // 7-bit chip address; default 0x40
	FrequencyHz float32 `yaml:"frequency_hz"` // frame frequency; default 50

	// OE, if present, is the GPIO line wired to the chip's output-enable
	// pin. Outputs are blanked while channels are programmed and enabled
	// afterwards.
	OE *OEConfig `yaml:"oe"`

	Channels []Channel `yaml:"channels"`
}

type OEConfig struct {
	Chip string `yaml:"chip"` // default gpiochip0
	Line int    `yaml:"line"`
}

// Channel programs one output. Exactly one of duty, on_ticks/off_ticks,
// pulse_us or angle_deg must be given.
type Channel struct {
	Channel uint8 `yaml:"channel"`

	// Duty in ticks out of 4096; invert flips the output sense.
	Duty   *uint16 `yaml:"duty"`
	Invert bool    `yaml:"invert"`

	// Raw on/off tick positions (both required together). Named *_ticks so
	// the keys never collide with YAML 1.1 boolean scalars.
	On  *uint16 `yaml:"on_ticks"`
	Off *uint16 `yaml:"off_ticks"`

	// Servo pulse width / angle. The pulse bounds apply to angle_deg.
	PulseUs    *uint16 `yaml:"pulse_us"`
	AngleDeg   *uint16 `yaml:"angle_deg"`
	MinPulseUs uint16  `yaml:"min_pulse_us"`
	MaxPulseUs uint16  `yaml:"max_pulse_us"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return parse(b)
}

func parse(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Bus == "" {
		cfg.Bus = "/dev/i2c-1"
	}
	if cfg.Address == 0 {
		cfg.Address = pca9685.AddressDefault
	}
	if cfg.FrequencyHz == 0 {
		cfg.FrequencyHz = pca9685.ServoFrequencyHz
	}
	if cfg.OE != nil && cfg.OE.Chip == "" {
		cfg.OE.Chip = "gpiochip0"
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Address > 0x7F {
		return fmt.Errorf("address %#x is not a 7-bit address", c.Address)
	}
	if c.FrequencyHz < 0 {
		return errors.New("frequency_hz must be positive")
	}
	for i, ch := range c.Channels {
		if err := ch.validate(); err != nil {
			return fmt.Errorf("channels[%d]: %w", i, err)
		}
	}
	return nil
}

func (c Channel) validate() error {
	if c.Channel >= pca9685.ChannelCount {
		return fmt.Errorf("channel %d out of range", c.Channel)
	}
	if (c.On == nil) != (c.Off == nil) {
		return errors.New("on_ticks and off_ticks must be given together")
	}
	modes := 0
	for _, set := range []bool{c.Duty != nil, c.On != nil, c.PulseUs != nil, c.AngleDeg != nil} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return errors.New("exactly one of duty, on_ticks/off_ticks, pulse_us or angle_deg is required")
	}
	if c.Duty != nil && *c.Duty > pca9685.DutyMax {
		return fmt.Errorf("duty %d exceeds %d", *c.Duty, pca9685.DutyMax)
	}
	if c.On != nil && (*c.On > 4096 || *c.Off > 4096) {
		return errors.New("tick positions exceed 4096")
	}
	if c.AngleDeg != nil && *c.AngleDeg > 180 {
		return fmt.Errorf("angle_deg %d exceeds 180", *c.AngleDeg)
	}
	return nil
}
