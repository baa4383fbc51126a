//go:build rp2040

// Command pico-demo: PCA9685 bring-up on RP2040/Pico.
//
// Build/flash (TinyGo):
//
//	tinygo flash -target pico ./cmd/pico-demo
//
// Wiring assumptions:
// - I2C0 @ 400 kHz on Pico defaults: SDA=GP4, SCL=GP5.
// - PCA9685 on I2C address 0x40.
// - Servo on channel 0, LED on channel 1.
package main

import (
	"machine"
	"time"

	"pca9685-go/drivers/pca9685"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(3 * time.Second)
	println("== pca9685 pico demo ==")

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz}); err != nil {
		println("i2c configure:", err.Error())
		return
	}

	dev := pca9685.New(i2c, pca9685.Config{})
	if err := dev.Configure(); err != nil {
		println("pca9685 configure:", err.Error())
		return
	}
	if err := dev.SetFrequency(pca9685.ServoFrequencyHz); err != nil {
		println("set frequency:", err.Error())
		return
	}

	servo := pca9685.NewServo(dev, pca9685.ServoConfig{Channel: 0})

	for {
		for _, deg := range []uint16{0, 90, 180, 90} {
			if err := servo.SetAngle(deg); err != nil {
				println("servo:", err.Error())
			}
			time.Sleep(700 * time.Millisecond)
		}
		if err := dev.Fade(1, 0, pca9685.DutyMax, 2*time.Second, 64); err != nil {
			println("fade up:", err.Error())
		}
		if err := dev.Fade(1, pca9685.DutyMax, 0, 2*time.Second, 64); err != nil {
			println("fade down:", err.Error())
		}
	}
}
