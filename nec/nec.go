// nec implements NEC infrared frames, repeat codes and the encoder that
// transmits them through a tinyir.TxDevice.
package nec

import (
	"errors"
	"fmt"
	"time"

	"github.com/sparques/tinyir"
	"github.com/sparques/tinyir/x/mathx"
)

// Unit is the NEC base period; every NEC timing is a multiple of it.
const Unit = 562500 * time.Nanosecond

// RepeatPeriod is the nominal spacing of repeat codes while a key is held.
const RepeatPeriod = 192 * Unit // 108 ms

var (
	// ErrFrameAlloc is returned when an attempt to unmarshal to a nil Frame is done--the frame must be allocated ahead of time
	ErrFrameAlloc = errors.New("tried to unmarshal to unallocated frame")
	// ErrInverse is returned when a received byte is not the complement of its partner.
	ErrInverse = errors.New("inverse byte mismatch")
	// ErrCalibration is returned for a calibration outside ±MaxCalibration percent.
	ErrCalibration = errors.New("calibration out of range")
)

// MaxCalibration bounds Timing.Calibrated, in percent.
const MaxCalibration = 50

// Timing holds every duration the encoder emits.
type Timing struct {
	LeadBurst time.Duration
	LeadPause time.Duration

	// Every data bit is BitBurst then BitPause; a one adds OneExtension
	// of silence so only pause width carries information.
	BitBurst     time.Duration
	BitPause     time.Duration
	OneExtension time.Duration

	EndBurst    time.Duration
	RepeatPause time.Duration

	// RepeatBefore and RepeatAfter surround each repeat code while a key
	// is held; together with the code itself they make up RepeatPeriod.
	RepeatBefore time.Duration
	RepeatAfter  time.Duration
}

// DefaultTiming is the nominal NEC table.
var DefaultTiming = Timing{
	LeadBurst:    16 * Unit, // 9 ms
	LeadPause:    8 * Unit,  // 4.5 ms
	BitBurst:     Unit,
	BitPause:     Unit,
	OneExtension: 2 * Unit, // 1687.5us - 562.5us
	EndBurst:     Unit,
	RepeatPause:  4 * Unit, // 2.25 ms
	RepeatBefore: 40 * time.Millisecond,
	RepeatAfter:  56 * time.Millisecond,
}

// Calibrated scales every duration by (100+percent)/100. Use it when the
// oscillator is known to run off by a fixed amount.
func (t Timing) Calibrated(percent int) (Timing, error) {
	if !mathx.Between(percent, -MaxCalibration, MaxCalibration) {
		return t, fmt.Errorf("nec: %d%%: %w", percent, ErrCalibration)
	}
	num := time.Duration(100 + percent)
	for _, d := range []*time.Duration{
		&t.LeadBurst, &t.LeadPause,
		&t.BitBurst, &t.BitPause, &t.OneExtension,
		&t.EndBurst, &t.RepeatPause,
		&t.RepeatBefore, &t.RepeatAfter,
	} {
		*d = mathx.MulDiv(*d, num, 100)
	}
	return t, nil
}

// StartPair is the leading burst and pause of a frame.
func (t Timing) StartPair() tinyir.TimePair { return tinyir.TimePair{t.LeadBurst, t.LeadPause} }

// BitPair is a data bit; on its own it is a zero.
func (t Timing) BitPair() tinyir.TimePair { return tinyir.TimePair{t.BitBurst, t.BitPause} }

// OnePair is the burst-less extension that turns a BitPair into a one.
func (t Timing) OnePair() tinyir.TimePair { return tinyir.TimePair{0, t.OneExtension} }

// EndPair closes a frame or repeat code.
func (t Timing) EndPair() tinyir.TimePair { return tinyir.TimePair{t.EndBurst, 0} }

// RepeatPair is the leading burst and short pause of a repeat code.
func (t Timing) RepeatPair() tinyir.TimePair { return tinyir.TimePair{t.LeadBurst, t.RepeatPause} }

type pairSlice []tinyir.TimePair

var _ Transmitter = (*pairSlice)(nil)

func (ps *pairSlice) SendPair(p tinyir.TimePair) { *ps = append(*ps, p) }

func (t Timing) sendByte(s Transmitter, value byte) {
	// 8 bits, LSB first
	for i := 8; i > 0; i, value = i-1, value>>1 {
		s.SendPair(t.BitPair())
		if value&1 == 1 {
			s.SendPair(t.OnePair())
		}
	}
}

func (t Timing) sendFrame(s Transmitter, f Frame) {
	s.SendPair(t.StartPair())
	for _, b := range f.Bytes() {
		t.sendByte(s, b)
	}
	s.SendPair(t.EndPair())
}

func (t Timing) sendRepeat(s Transmitter) {
	s.SendPair(t.RepeatPair())
	s.SendPair(t.EndPair())
}

// AppendByte appends the pairs for one byte, LSB first.
func (t Timing) AppendByte(dst []tinyir.TimePair, value byte) []tinyir.TimePair {
	ps := pairSlice(dst)
	t.sendByte(&ps, value)
	return ps
}

// AppendFrame appends a complete frame: start, the four bytes, end.
func (t Timing) AppendFrame(dst []tinyir.TimePair, f Frame) []tinyir.TimePair {
	ps := pairSlice(dst)
	t.sendFrame(&ps, f)
	return ps
}

// AppendRepeat appends a repeat code without the cadence delays around it.
func (t Timing) AppendRepeat(dst []tinyir.TimePair) []tinyir.TimePair {
	ps := pairSlice(dst)
	t.sendRepeat(&ps)
	return ps
}

// Frame is one address + command transmission.
type Frame struct {
	Addr byte
	Cmd  byte
}

// Bytes returns the bytes in the order they go on the air.
func (f Frame) Bytes() [4]byte {
	return [4]byte{f.Addr, ^f.Addr, f.Cmd, ^f.Cmd}
}

// Raw packs the frame as it is sent: first bit on the air is bit 0.
func (f Frame) Raw() uint32 {
	b := f.Bytes()
	return uint32(b[3])<<24 | uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0])
}

// MarshalFrame implements tinyir.FrameMarshaller using DefaultTiming.
func (f Frame) MarshalFrame() []tinyir.TimePair {
	return DefaultTiming.AppendFrame(make([]tinyir.TimePair, 0, MaxFramePairs), f)
}

// UnmarshalFrame fills f from 32 bits received LSB first and checks both
// inverse bytes.
func (f *Frame) UnmarshalFrame(buf uint32) error {
	if f == nil {
		return ErrFrameAlloc
	}
	addr, invAddr := byte(buf), byte(buf>>8)
	cmd, invCmd := byte(buf>>16), byte(buf>>24)
	if addr != ^invAddr {
		return fmt.Errorf("nec: address %#02x/%#02x: %w", addr, invAddr, ErrInverse)
	}
	if cmd != ^invCmd {
		return fmt.Errorf("nec: command %#02x/%#02x: %w", cmd, invCmd, ErrInverse)
	}
	f.Addr = addr
	f.Cmd = cmd
	return nil
}

// MaxFramePairs is the longest a frame can get: start, 32 bits each with
// an extension, end.
const MaxFramePairs = 1 + 32*2 + 1

// Repeat is the short code sent while a key stays down.
type Repeat struct{}

// MarshalFrame implements tinyir.FrameMarshaller using DefaultTiming.
func (Repeat) MarshalFrame() []tinyir.TimePair {
	return DefaultTiming.AppendRepeat(nil)
}
