package pca9685

const (
	// 7-bit I2C address with all six address pins strapped low.
	AddressDefault = 0x40

	// --- Register sub-addresses (8-bit registers) ---

	regMode1      = 0x00 // R/W mode register 1
	regMode2      = 0x01 // R/W mode register 2
	regSubAdr1    = 0x02 // R/W I2C subaddress 1
	regSubAdr2    = 0x03 // R/W I2C subaddress 2
	regSubAdr3    = 0x04 // R/W I2C subaddress 3
	regAllCallAdr = 0x05 // R/W all-call I2C address

	// Per-channel blocks: channel N occupies the four registers starting at
	// regLed0OnL + 4*N, ordered ON_L, ON_H, OFF_L, OFF_H.
	regLed0OnL = 0x06

	regAllLedOnL  = 0xFA // W broadcast ON low byte (all channels)
	regAllLedOnH  = 0xFB // W broadcast ON high byte
	regAllLedOffL = 0xFC // W broadcast OFF low byte
	regAllLedOffH = 0xFD // W broadcast OFF high byte
	regPrescale   = 0xFE // R/W frame frequency prescaler (writable in sleep only)

	// --- MODE1 bits ---

	mode1Restart = 0x80
	mode1ExtClk  = 0x40
	mode1AutoInc = 0x20
	mode1Sleep   = 0x10
	mode1Sub1    = 0x08
	mode1Sub2    = 0x04
	mode1Sub3    = 0x02
	mode1AllCall = 0x01
)
