package pca9685

import "pca9685-go/x/mathx"

// Hobby-servo defaults: 50 Hz frame, 1000–2000 µs pulse for 0–180 degrees.
const (
	ServoFrequencyHz = 50
	ServoMinPulseUs  = 1000
	ServoMaxPulseUs  = 2000
	servoMaxAngleDeg = 180
)

// ServoConfig binds a Servo to one channel. Pulse bounds are optional.
type ServoConfig struct {
	Channel uint8
	// MinPulseUs/MaxPulseUs are the pulse widths for 0 and 180 degrees.
	// They default to ServoMinPulseUs/ServoMaxPulseUs. Widen them only if
	// the servo's datasheet allows it.
	MinPulseUs uint16
	MaxPulseUs uint16
}

// Servo positions an RC servo attached to one channel, converting pulse
// widths and angles to frame ticks. The device's frame frequency must be set
// (typically to ServoFrequencyHz) before use; the chip has one frequency for
// all channels, so every servo on it shares the frame rate.
type Servo struct {
	dev          *Device
	ch           uint8
	minUs, maxUs uint16
}

// NewServo binds a servo helper to a channel of d.
func NewServo(d *Device, cfg ServoConfig) Servo {
	minUs := cfg.MinPulseUs
	if minUs == 0 {
		minUs = ServoMinPulseUs
	}
	maxUs := cfg.MaxPulseUs
	if maxUs == 0 {
		maxUs = ServoMaxPulseUs
	}
	return Servo{dev: d, ch: cfg.Channel, minUs: minUs, maxUs: maxUs}
}

// SetMicroseconds programs the pulse width directly. Values outside the
// configured bounds are sent as-is; the servo may not track them.
func (s Servo) SetMicroseconds(us uint16) error {
	ticks, err := s.dev.pulseTicks(us)
	if err != nil {
		return err
	}
	return s.dev.SetDuty(s.ch, ticks, false)
}

// SetAngle positions the servo at deg in [0,180], mapped linearly onto the
// configured pulse range. Out-of-range angles clamp to the endpoints.
func (s Servo) SetAngle(deg uint16) error {
	return s.SetMicroseconds(mathx.MapU16(deg, 0, servoMaxAngleDeg, s.minUs, s.maxUs))
}

// pulseTicks converts a pulse width to frame ticks at the nominal frame
// frequency last programmed.
func (d *Device) pulseTicks(us uint16) (uint16, error) {
	if d.freqHz == 0 {
		return 0, ErrFrequencyUnset
	}
	t := float32(us) * d.freqHz * float32(ticksPerFrame) / 1e6
	return mathx.Min(uint16(t+0.5), uint16(DutyMax)), nil
}
