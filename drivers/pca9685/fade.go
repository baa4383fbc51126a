package pca9685

import (
	"time"

	"pca9685-go/x/ramp"
)

// Fade walks a channel's duty linearly from one level to another in equal
// time steps, blocking for the whole duration. The caller supplies the
// starting level because the driver does not mirror chip state. The first
// bus failure aborts the ramp and is returned.
func (d *Device) Fade(ch uint8, from, to uint16, duration time.Duration, steps uint16) error {
	if ch >= ChannelCount {
		return ErrInvalidChannel
	}
	var err error
	ramp.Linear(from, to, DutyMax, duration, steps,
		func(dt time.Duration) bool {
			time.Sleep(dt)
			return err == nil
		},
		func(level uint16) {
			if err == nil {
				err = d.SetDuty(ch, level, false)
			}
		})
	return err
}
