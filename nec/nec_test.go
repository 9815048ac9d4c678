package nec

import (
	"errors"
	"fmt"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/sparques/tinyir"
)

func TestDefaultTimingTable(t *testing.T) {
	c := qt.New(t)
	tm := DefaultTiming

	c.Assert(tm.StartPair(), qt.Equals, tinyir.TimePair{9000 * time.Microsecond, 4500 * time.Microsecond})
	c.Assert(tm.BitPair(), qt.Equals, tinyir.TimePair{562500 * time.Nanosecond, 562500 * time.Nanosecond})
	c.Assert(tm.OnePair(), qt.Equals, tinyir.TimePair{0, 1125 * time.Microsecond})
	c.Assert(tm.EndPair(), qt.Equals, tinyir.TimePair{562500 * time.Nanosecond, 0})
	c.Assert(tm.RepeatPair(), qt.Equals, tinyir.TimePair{9000 * time.Microsecond, 2250 * time.Microsecond})

	// burst:pause ratios
	c.Assert(tm.StartPair()[0], qt.Equals, 2*tm.StartPair()[1])
	c.Assert(tm.RepeatPair()[0], qt.Equals, 4*tm.RepeatPair()[1])

	// a held key repeats about every 108 ms
	cycle := tm.RepeatBefore + tm.RepeatPair().Duration() + tm.EndPair().Duration() + tm.RepeatAfter
	c.Assert(cycle > RepeatPeriod-time.Millisecond && cycle <= RepeatPeriod, qt.IsTrue, qt.Commentf("cycle %v", cycle))
}

func TestAppendByteLSBFirst(t *testing.T) {
	c := qt.New(t)
	tm := DefaultTiming
	zero, one := tm.BitPair(), tm.OnePair()

	got := tm.AppendByte(nil, 0b00000101)
	c.Assert(got, qt.DeepEquals, []tinyir.TimePair{
		zero, one, // bit 0
		zero,      // bit 1
		zero, one, // bit 2
		zero, zero, zero, zero, zero,
	})
}

func TestAppendByteBurstsConstant(t *testing.T) {
	c := qt.New(t)
	tm := DefaultTiming
	for v := 0; v < 256; v++ {
		pairs := tm.AppendByte(nil, byte(v))
		bursts := 0
		for _, p := range pairs {
			switch p[0] {
			case 0:
				c.Assert(p[1], qt.Equals, tm.OneExtension)
			case tm.BitBurst:
				bursts++
				c.Assert(p[1], qt.Equals, tm.BitPause)
			default:
				c.Fatalf("value %#02x: unexpected pair %v", v, p)
			}
		}
		c.Assert(bursts, qt.Equals, 8)
	}
}

func TestAppendFrameLayout(t *testing.T) {
	c := qt.New(t)
	tm := DefaultTiming
	f := Frame{Addr: 0x04, Cmd: 0x02}

	got := tm.AppendFrame(nil, f)
	want := []tinyir.TimePair{tm.StartPair()}
	for _, b := range []byte{0x04, 0xFB, 0x02, 0xFD} {
		want = tm.AppendByte(want, b)
	}
	want = append(want, tm.EndPair())

	c.Assert(got, qt.DeepEquals, want)
	c.Assert(f.MarshalFrame(), qt.DeepEquals, want)
	c.Assert(len(got) <= MaxFramePairs, qt.IsTrue)
}

func TestAppendRepeat(t *testing.T) {
	c := qt.New(t)
	tm := DefaultTiming
	c.Assert(tm.AppendRepeat(nil), qt.DeepEquals, []tinyir.TimePair{tm.RepeatPair(), tm.EndPair()})
	c.Assert(Repeat{}.MarshalFrame(), qt.DeepEquals, tm.AppendRepeat(nil))
}

func TestFrameBytesInverse(t *testing.T) {
	c := qt.New(t)
	for a := 0; a < 256; a += 7 {
		for cmd := 0; cmd < 256; cmd += 5 {
			b := Frame{Addr: byte(a), Cmd: byte(cmd)}.Bytes()
			c.Assert(b[1], qt.Equals, ^b[0])
			c.Assert(b[3], qt.Equals, ^b[2])
		}
	}
}

type NECTestData struct {
	Code    uint32
	Address byte
	Command byte
}

func TestFrameRaw(t *testing.T) {
	c := qt.New(t)
	tests := []NECTestData{
		{Code: 0xFF00FF00, Address: 0x00, Command: 0x00},
		{Code: 0x00FFFF00, Address: 0x00, Command: 0xFF},
		{Code: 0xFF0000FF, Address: 0xFF, Command: 0x00},
		{Code: 0xFD02FB04, Address: 0x04, Command: 0x02},
		{Code: 0xF708FB04, Address: 0x04, Command: 0x08},
	}
	for _, data := range tests {
		name := fmt.Sprintf("Code:%08x Addr:%02x Cmd:%02x", data.Code, data.Address, data.Command)
		c.Run(name, func(c *qt.C) {
			f := Frame{Addr: data.Address, Cmd: data.Command}
			c.Assert(f.Raw(), qt.Equals, data.Code)

			var got Frame
			c.Assert(got.UnmarshalFrame(data.Code), qt.IsNil)
			c.Assert(got, qt.Equals, f)
		})
	}
}

func TestUnmarshalFrameInverseMismatch(t *testing.T) {
	c := qt.New(t)
	for i := 0; i < 8; i++ {
		var f Frame
		err := f.UnmarshalFrame(0xFD02FB04 ^ 1<<(8+i))
		c.Assert(errors.Is(err, ErrInverse), qt.IsTrue)
		err = f.UnmarshalFrame(0xFD02FB04 ^ 1<<(24+i))
		c.Assert(errors.Is(err, ErrInverse), qt.IsTrue)
	}
	var nilFrame *Frame
	c.Assert(nilFrame.UnmarshalFrame(0), qt.Equals, ErrFrameAlloc)
}

func TestCalibrated(t *testing.T) {
	c := qt.New(t)

	slow, err := DefaultTiming.Calibrated(4)
	c.Assert(err, qt.IsNil)
	c.Assert(slow.LeadBurst, qt.Equals, 9360*time.Microsecond)
	c.Assert(slow.BitBurst, qt.Equals, 585*time.Microsecond)
	c.Assert(slow.RepeatAfter, qt.Equals, 58240*time.Microsecond)

	same, err := DefaultTiming.Calibrated(0)
	c.Assert(err, qt.IsNil)
	c.Assert(same, qt.Equals, DefaultTiming)

	_, err = DefaultTiming.Calibrated(-51)
	c.Assert(errors.Is(err, ErrCalibration), qt.IsTrue)
}
