//go:build linux

// Command pwmctl applies a YAML channel configuration to a PCA9685 on a
// Linux I2C adapter.
//
// Usage:
//
//	pwmctl -config pwm.yaml
//
// Example configuration:
//
//	bus: /dev/i2c-1
//	address: 0x40
//	frequency_hz: 50
//	oe:
//	  chip: gpiochip0
//	  line: 17
//	channels:
//	  - {channel: 0, angle_deg: 90}
//	  - {channel: 1, pulse_us: 1500}
//	  - {channel: 4, duty: 2048, invert: true}
//	  - {channel: 5, on_ticks: 0, off_ticks: 4096}
package main

import (
	"flag"
	"fmt"
	"os"

	"pca9685-go/bus/i2cdev"
	"pca9685-go/bus/oepin"
	"pca9685-go/drivers/pca9685"
)

func main() {
	configPath := flag.String("config", "pwm.yaml", "path to YAML configuration")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "pwmctl:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}

	bus, err := i2cdev.Open(cfg.Bus)
	if err != nil {
		return err
	}
	defer bus.Close()

	// Blank the outputs while reprogramming, if an OE line is configured.
	var oe *oepin.Pin
	if cfg.OE != nil {
		oe, err = oepin.Open(cfg.OE.Chip, cfg.OE.Line)
		if err != nil {
			return err
		}
		defer oe.Release()
	}

	dev := pca9685.New(bus, pca9685.Config{Address: cfg.Address})
	if err := dev.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := dev.SetFrequency(cfg.FrequencyHz); err != nil {
		return fmt.Errorf("set frequency: %w", err)
	}

	for i, ch := range cfg.Channels {
		if err := apply(dev, ch); err != nil {
			return fmt.Errorf("channels[%d]: %w", i, err)
		}
	}

	if oe != nil {
		if err := oe.Enable(); err != nil {
			return err
		}
	}
	return nil
}

func apply(dev *pca9685.Device, c Channel) error {
	switch {
	case c.On != nil:
		return dev.SetChannel(c.Channel, *c.On, *c.Off)
	case c.Duty != nil:
		return dev.SetDuty(c.Channel, *c.Duty, c.Invert)
	case c.PulseUs != nil:
		s := pca9685.NewServo(dev, pca9685.ServoConfig{
			Channel: c.Channel, MinPulseUs: c.MinPulseUs, MaxPulseUs: c.MaxPulseUs,
		})
		return s.SetMicroseconds(*c.PulseUs)
	case c.AngleDeg != nil:
		s := pca9685.NewServo(dev, pca9685.ServoConfig{
			Channel: c.Channel, MinPulseUs: c.MinPulseUs, MaxPulseUs: c.MaxPulseUs,
		})
		return s.SetAngle(*c.AngleDeg)
	}
	return nil
}
