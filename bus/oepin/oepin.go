//go:build linux

// Package oepin drives the PCA9685's active-low OE (output enable) pin
// through the Linux GPIO character device. OE gates all 16 outputs at once
// without touching chip registers, so a host can blank the outputs while it
// reprograms channels.
package oepin

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Pin is a claimed OE line. The line is requested high (outputs disabled)
// so nothing glitches on between claim and the first Enable.
type Pin struct {
	line *gpiocdev.Line
}

// Open claims the line at offset on the named chip (e.g. "gpiochip0").
func Open(chip string, offset int) (*Pin, error) {
	if offset < 0 {
		return nil, fmt.Errorf("oepin: invalid line offset %d", offset)
	}
	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsOutput(1), gpiocdev.WithConsumer("pca9685-oe"))
	if err != nil {
		return nil, fmt.Errorf("oepin: request %s:%d: %w", chip, offset, err)
	}
	return &Pin{line: line}, nil
}

// Enable drives OE low, turning the chip's outputs on.
func (p *Pin) Enable() error { return p.line.SetValue(0) }

// Disable drives OE high, forcing all outputs off.
func (p *Pin) Disable() error { return p.line.SetValue(1) }

// Release gives the line back without changing its level, leaving the
// outputs in whatever state they were last driven to.
func (p *Pin) Release() error {
	if p == nil || p.line == nil {
		return nil
	}
	err := p.line.Close()
	p.line = nil
	return err
}

// Close disables the outputs and releases the line.
func (p *Pin) Close() error {
	if p == nil || p.line == nil {
		return nil
	}
	_ = p.line.SetValue(1)
	err := p.line.Close()
	p.line = nil
	return err
}
