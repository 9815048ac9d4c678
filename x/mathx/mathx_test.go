package mathx

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestBetween(t *testing.T) {
	c := qt.New(t)
	c.Assert(Between(3, 1, 3), qt.IsTrue)
	c.Assert(Between(3, 3, 1), qt.IsTrue)
	c.Assert(Between(4, 1, 3), qt.IsFalse)
}

func TestMulDiv(t *testing.T) {
	c := qt.New(t)
	c.Assert(MulDiv(9*time.Millisecond, 102, 100), qt.Equals, 9180*time.Microsecond)
	c.Assert(MulDiv(uint8(200), 1, 0), qt.Equals, uint8(0))
}

func TestNear(t *testing.T) {
	c := qt.New(t)
	want := 562500 * time.Nanosecond
	c.Assert(Near(600*time.Microsecond, want, 10), qt.IsTrue)
	c.Assert(Near(700*time.Microsecond, want, 10), qt.IsFalse)
	c.Assert(Near(want, want, 0), qt.IsTrue)
}
