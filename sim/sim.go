// sim is a host stand-in for the remote's hardware: a virtual clock, a
// carrier that records every burst against it, and scripted button inputs.
// Nothing here sleeps in real time.
package sim

import (
	"time"

	"github.com/sparques/tinyir"
)

// Clock is virtual time. It only moves when something waits on it.
type Clock struct {
	now time.Duration
}

// Wait implements tinyir.Waiter.
func (c *Clock) Wait(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// Now is the time elapsed since the clock was created.
func (c *Clock) Now() time.Duration { return c.now }

// AdvanceTo moves the clock forward to t; it never goes back.
func (c *Clock) AdvanceTo(t time.Duration) {
	if t > c.now {
		c.now = t
	}
}

// Burst is one stretch of enabled carrier, in clock time.
type Burst struct {
	Start, End time.Duration
}

func (b Burst) Width() time.Duration { return b.End - b.Start }

// Carrier implements tinyir.Carrier and records bursts on a Clock.
// A burst that is enabled and disabled at the same instant leaves no trace.
type Carrier struct {
	clock   *Clock
	enabled bool
	since   time.Duration
	bursts  []Burst

	// Enables counts Enable calls that actually switched the carrier on.
	Enables int
}

func NewCarrier(clock *Clock) *Carrier {
	return &Carrier{clock: clock}
}

func (c *Carrier) Enable() {
	if c.enabled {
		return
	}
	c.enabled = true
	c.since = c.clock.Now()
	c.Enables++
}

func (c *Carrier) Disable() {
	if !c.enabled {
		return
	}
	c.enabled = false
	if now := c.clock.Now(); now > c.since {
		c.bursts = append(c.bursts, Burst{Start: c.since, End: now})
	}
}

// Enabled reports whether the carrier is currently on.
func (c *Carrier) Enabled() bool { return c.enabled }

// Bursts returns a copy of the recorded bursts.
func (c *Carrier) Bursts() []Burst {
	return append([]Burst(nil), c.bursts...)
}

// Pairs turns the recorded bursts into TimePairs, each pause running up to
// the start of the next burst. The last pair has no pause.
func (c *Carrier) Pairs() []tinyir.TimePair {
	out := make([]tinyir.TimePair, len(c.bursts))
	for i, b := range c.bursts {
		out[i][0] = b.Width()
		if i+1 < len(c.bursts) {
			out[i][1] = c.bursts[i+1].Start - b.End
		}
	}
	return out
}

// Reset forgets every recorded burst.
func (c *Carrier) Reset() {
	c.bursts = c.bursts[:0]
	c.Enables = 0
}

// Recorder is a tinyir.PairHandler that keeps every pair it sees.
type Recorder struct {
	Pairs []tinyir.TimePair
}

func (r *Recorder) HandleTimePair(pair tinyir.TimePair) {
	r.Pairs = append(r.Pairs, pair)
}

// Rig is a ready wired clock, carrier and transmitter.
type Rig struct {
	Clock   *Clock
	Carrier *Carrier
	Tx      *tinyir.TxDevice
}

func NewRig() *Rig {
	clock := &Clock{}
	carrier := NewCarrier(clock)
	return &Rig{
		Clock:   clock,
		Carrier: carrier,
		Tx:      tinyir.NewTxDevice(carrier, clock),
	}
}
