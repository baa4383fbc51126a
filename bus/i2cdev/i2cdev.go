//go:build linux

// Package i2cdev opens a Linux I2C adapter (/dev/i2c-*) and exposes it as a
// drivers.I2C, so TinyGo chip drivers run unchanged on SBC hosts.
//
// Transfers use the I2C_RDWR ioctl, so a combined write+read goes out as one
// transaction with a repeated start, which register reads require.
package i2cdev

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/unix"

	"tinygo.org/x/drivers"
)

const (
	i2cMrd  = 0x0001
	i2cRdwr = 0x0707
)

type msg struct {
	addr  uint16
	flags uint16
	len   uint16
	buf   uintptr
}

type rdwrData struct {
	msgs  uintptr
	nmsgs uint32
}

// Bus is an opened I2C adapter.
//
// Bus is not safe for concurrent transfers; coordinate at a higher level if
// you need concurrency.
type Bus struct {
	f    *os.File
	path string
}

// Compile-time check.
var _ drivers.I2C = (*Bus)(nil)

// Open opens an adapter by device path, e.g. /dev/i2c-1.
func Open(path string) (*Bus, error) {
	path = filepath.Clean(path)
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &Bus{f: f, path: path}, nil
}

func (b *Bus) Close() error {
	if b == nil || b.f == nil {
		return nil
	}
	err := b.f.Close()
	b.f = nil
	return err
}

// Tx performs a write followed by an optional repeated-start read at the
// given 7-bit address.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if b == nil || b.f == nil {
		return errors.New("i2cdev: bus closed")
	}
	if addr == 0 || addr > 0x7F {
		return fmt.Errorf("i2cdev: invalid address %#x", addr)
	}

	msgs := make([]msg, 0, 2)
	if len(w) > 0 {
		msgs = append(msgs, msg{addr: addr, len: uint16(len(w)), buf: uintptr(unsafe.Pointer(&w[0]))})
	}
	if len(r) > 0 {
		msgs = append(msgs, msg{addr: addr, flags: i2cMrd, len: uint16(len(r)), buf: uintptr(unsafe.Pointer(&r[0]))})
	}
	if len(msgs) == 0 {
		return nil
	}

	data := rdwrData{msgs: uintptr(unsafe.Pointer(&msgs[0])), nmsgs: uint32(len(msgs))}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, b.f.Fd(), uintptr(i2cRdwr), uintptr(unsafe.Pointer(&data)))
	if errno != 0 {
		return fmt.Errorf("i2cdev: %s: %w", b.path, errno)
	}
	return nil
}
