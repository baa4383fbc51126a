//go:build linux

package main

import (
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := parse([]byte("channels:\n  - {channel: 0, duty: 100}\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Bus != "/dev/i2c-1" {
		t.Fatalf("bus = %q", cfg.Bus)
	}
	if cfg.Address != 0x40 {
		t.Fatalf("address = %#x", cfg.Address)
	}
	if cfg.FrequencyHz != 50 {
		t.Fatalf("frequency = %v", cfg.FrequencyHz)
	}
}

func TestParseFull(t *testing.T) {
	src := `
bus: /dev/i2c-3
address: 0x41
frequency_hz: 100
oe:
  line: 17
channels:
  - {channel: 0, angle_deg: 90}
  - {channel: 1, pulse_us: 1500, min_pulse_us: 500, max_pulse_us: 2500}
  - {channel: 4, duty: 2048, invert: true}
  - {channel: 5, on_ticks: 0, off_ticks: 4096}
`
	cfg, err := parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.OE == nil || cfg.OE.Chip != "gpiochip0" || cfg.OE.Line != 17 {
		t.Fatalf("oe = %+v", cfg.OE)
	}
	if len(cfg.Channels) != 4 {
		t.Fatalf("%d channels", len(cfg.Channels))
	}
	if c := cfg.Channels[2]; c.Duty == nil || *c.Duty != 2048 || !c.Invert {
		t.Fatalf("channels[2] = %+v", c)
	}
	if c := cfg.Channels[3]; c.On == nil || *c.Off != 4096 {
		t.Fatalf("channels[3] = %+v", c)
	}
}

func TestParseRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name, src, want string
	}{
		{"channel range", "channels:\n  - {channel: 16, duty: 1}\n", "out of range"},
		{"no setting", "channels:\n  - {channel: 0}\n", "exactly one"},
		{"two settings", "channels:\n  - {channel: 0, duty: 1, pulse_us: 1500}\n", "exactly one"},
		{"lone on", "channels:\n  - {channel: 0, on_ticks: 5}\n", "together"},
		{"duty range", "channels:\n  - {channel: 0, duty: 4096}\n", "exceeds"},
		{"angle range", "channels:\n  - {channel: 0, angle_deg: 181}\n", "exceeds"},
		{"address", "address: 0x80\nchannels: []\n", "7-bit"},
	}
	for _, c := range cases {
		if _, err := parse([]byte(c.src)); err == nil || !strings.Contains(err.Error(), c.want) {
			t.Fatalf("%s: error = %v, want substring %q", c.name, err, c.want)
		}
	}
}
