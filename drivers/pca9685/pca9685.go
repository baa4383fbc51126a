// Package pca9685 provides a driver for the PCA9685 16-channel, 12-bit
// PWM/servo controller on an I2C bus.
//
// The chip has a single frame frequency shared by all 16 channels (set via
// SetFrequency) and independent on/off tick positions per channel within the
// 4096-tick frame (SetChannel, or the duty-oriented SetDuty).
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when
// both w and r are provided, without releasing the bus.
//
// No chip state is mirrored in memory; every operation round-trips to the
// hardware. The driver performs no locking: the caller serialises access to a
// device (and to the shared bus, if several chips share it).
package pca9685

import (
	"errors"
	"time"

	"pca9685-go/x/mathx"

	"tinygo.org/x/drivers"
)

const (
	// ChannelCount is the number of PWM outputs on the chip.
	ChannelCount = 16

	// DutyMax is the largest duty value accepted by SetDuty: the output is
	// active for all 4095 countable ticks of the 4096-tick frame.
	DutyMax = 4095

	// DefaultFrequencyHz is the frame frequency programmed by Configure.
	DefaultFrequencyHz = 1000

	// Internal oscillator rate and frame resolution, fixed by the silicon.
	oscClockHz    = 25000000
	ticksPerFrame = 4096

	// Bit 12 in an on/off tick field forces the output fully on (or off) for
	// the whole frame, ignoring the other field.
	fullScale = 4096

	// Prescaler register limits. The datasheet floors PRE_SCALE at 3.
	prescaleMin = 3
	prescaleMax = 255
)

// Errors returned by the driver. Bus failures are propagated from the
// transport unchanged.
var (
	ErrInvalidChannel = errors.New("pca9685: channel out of range")
	ErrFrequencyUnset = errors.New("pca9685: frame frequency not set")
)

// Config holds construction-time settings. All fields are optional.
type Config struct {
	// Address defaults to AddressDefault if zero.
	Address uint16
}

// Device wraps one PCA9685 on an I2C bus. It holds no chip state beyond the
// last requested frame frequency.
type Device struct {
	bus  drivers.I2C
	addr uint16

	// Nominal frame frequency last passed to SetFrequency, before the
	// overshoot correction. Zero until SetFrequency succeeds. Used by the
	// servo helper for pulse-width conversion.
	freqHz float32

	// Fixed buffers to avoid per-call heap allocations.
	w [5]byte
	r [1]byte
}

// New constructs a Device. The I2C bus must already be configured. This only
// creates the object; it does not touch the hardware.
func New(bus drivers.I2C, cfg Config) *Device {
	addr := cfg.Address
	if addr == 0 {
		addr = AddressDefault
	}
	return &Device{bus: bus, addr: addr}
}

// Configure resets the chip and programs the default frame frequency,
// leaving it awake with register auto-increment enabled.
func (d *Device) Configure() error {
	if err := d.Reset(); err != nil {
		return err
	}
	return d.SetFrequency(DefaultFrequencyHz)
}

// Reset restarts the chip's internal state machine, then blocks for the
// 10 ms the part needs before the oscillator is usable again.
func (d *Device) Reset() error {
	if err := d.writeReg(regMode1, mode1Restart); err != nil {
		return err
	}
	time.Sleep(10 * time.Millisecond)
	return nil
}

// SetFrequency programs the shared prescaler that sets the PWM frame
// frequency for all 16 channels; the chip cannot do per-channel frequencies.
//
// The requested value is corrected by 0.9x for the oscillator's measured
// overshoot before the prescaler is computed. The usable range is roughly
// 24 Hz to 1526 Hz; values outside it saturate the prescaler register.
//
// The sequence is not transactional: a bus failure part-way through can leave
// the chip asleep or with the old prescaler. Callers that care should retry
// or re-run Configure.
func (d *Device) SetFrequency(freqHz float32) error {
	corrected := freqHz * 0.9
	pv := float32(oscClockHz)/float32(ticksPerFrame)/corrected - 1
	prescale := byte(mathx.Clamp(int32(pv+0.5), prescaleMin, prescaleMax))

	oldMode, err := d.readReg(regMode1)
	if err != nil {
		return err
	}
	// The prescaler is only writable while the oscillator is stopped.
	sleepMode := (oldMode &^ mode1Restart) | mode1Sleep
	if err := d.writeReg(regMode1, sleepMode); err != nil {
		return err
	}
	if err := d.writeReg(regPrescale, prescale); err != nil {
		return err
	}
	if err := d.writeReg(regMode1, oldMode); err != nil {
		return err
	}
	time.Sleep(5 * time.Millisecond)
	// Restart, and enable auto-increment so channel updates go out as one
	// 4-byte burst.
	if err := d.writeReg(regMode1, oldMode|mode1Restart|mode1AutoInc); err != nil {
		return err
	}
	d.freqHz = freqHz
	return nil
}

// SetChannel programs the raw on/off tick positions for one channel, writing
// all four registers in a single auto-increment burst. on and off are
// positions in [0,4095] within the frame; either may instead carry bit 12
// (value 4096), the chip's full-on/full-off override.
func (d *Device) SetChannel(ch uint8, on, off uint16) error {
	if ch >= ChannelCount {
		return ErrInvalidChannel
	}
	d.w[0] = regLed0OnL + 4*ch
	d.w[1] = byte(on)
	d.w[2] = byte(on >> 8)
	d.w[3] = byte(off)
	d.w[4] = byte(off >> 8)
	return d.bus.Tx(d.addr, d.w[:5], nil)
}

// SetDuty sets how many of the 4096 ticks in each frame the channel is
// active, without the caller placing on/off edges. ticks is clamped to
// [0,DutyMax]; 0 and DutyMax map to the chip's full-off and full-on
// overrides. invert flips the output sense for loads sunk to ground, so
// ticks still expresses "how much is the load on".
func (d *Device) SetDuty(ch uint8, ticks uint16, invert bool) error {
	ticks = mathx.Min(ticks, uint16(DutyMax))
	var on, off uint16
	if invert {
		switch ticks {
		case 0:
			on = fullScale
		case DutyMax:
			off = fullScale
		default:
			off = DutyMax - ticks
		}
	} else {
		switch ticks {
		case DutyMax:
			on = fullScale
		case 0:
			off = fullScale
		default:
			off = ticks
		}
	}
	return d.SetChannel(ch, on, off)
}

// Frequency returns the nominal frame frequency last programmed with
// SetFrequency, or zero if none has been set.
func (d *Device) Frequency() float32 { return d.freqHz }

// --- Low-level register access ---

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	return d.bus.Tx(d.addr, d.w[:2], nil)
}
