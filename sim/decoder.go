package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/sparques/tinyir"
	"github.com/sparques/tinyir/nec"
	"github.com/sparques/tinyir/x/mathx"
)

// DefaultTolerance is how far, in percent, a width may stray and still
// match; consumer receivers accept about this much.
const DefaultTolerance = 10

var (
	// ErrBitWidth is returned for a data bit whose burst or pause fits neither value.
	ErrBitWidth = errors.New("bit width out of tolerance")
	// ErrShort is returned when pairs run out before all bits are read.
	ErrShort = errors.New("not enough pairs")
)

// Kind tells frames and repeat codes apart.
type Kind uint8

const (
	KindFrame Kind = iota
	KindRepeat
)

func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// Transmission is one decoded frame or repeat code.
type Transmission struct {
	Kind  Kind
	Frame nec.Frame
	// Raw is the 32 bits as received, first bit in bit 0.
	Raw uint32
	// At is the offset of the leading burst from the first pair handled.
	At  time.Duration
	Err error
}

// Merge folds burst-less pairs into the pause before them, giving what a
// receiver actually sees.
func Merge(pairs []tinyir.TimePair) []tinyir.TimePair {
	out := make([]tinyir.TimePair, 0, len(pairs))
	for _, p := range pairs {
		if p[0] == 0 && len(out) > 0 {
			out[len(out)-1][1] += p[1]
			continue
		}
		out = append(out, p)
	}
	return out
}

func near(got, want time.Duration, tol int) bool {
	return mathx.Near(got, want, time.Duration(tol))
}

// bit classifies one data-bit pair.
func bit(pair tinyir.TimePair, t nec.Timing, tol int) (bool, error) {
	if !near(pair[0], t.BitBurst, tol) {
		return false, fmt.Errorf("burst %v: %w", pair[0], ErrBitWidth)
	}
	switch {
	case near(pair[1], t.BitPause, tol):
		return false, nil
	case near(pair[1], t.BitPause+t.OneExtension, tol):
		return true, nil
	}
	return false, fmt.Errorf("pause %v: %w", pair[1], ErrBitWidth)
}

// ReadBits decodes n data bits, LSB first, from the start of pairs. Pairs
// may be raw primitives; they are merged first.
func ReadBits(pairs []tinyir.TimePair, n int, t nec.Timing, tol int) (uint32, error) {
	pairs = Merge(pairs)
	if len(pairs) < n {
		return 0, fmt.Errorf("sim: %d of %d bits: %w", len(pairs), n, ErrShort)
	}
	var v uint32
	for i := 0; i < n; i++ {
		one, err := bit(pairs[i], t, tol)
		if err != nil {
			return v, fmt.Errorf("sim: bit %d: %w", i, err)
		}
		if one {
			v |= 1 << i
		}
	}
	return v, nil
}

type decodeState uint8

const (
	waitLead decodeState = iota
	readBits
	frameEnd
	repeatEnd
)

// Decoder implements tinyir.PairHandler and turns pairs back into NEC
// transmissions. Feed it either the raw primitives from a TxDevice tap or
// the bursts a Carrier recorded; call Flush after the last pair.
type Decoder struct {
	Timing    nec.Timing
	Tolerance int
	Handler   func(Transmission)

	pending    tinyir.TimePair
	hasPending bool
	at         time.Duration

	state    decodeState
	start    time.Duration
	buf      uint32
	bitcount int
}

func NewDecoder(handler func(Transmission)) *Decoder {
	return &Decoder{
		Timing:    nec.DefaultTiming,
		Tolerance: DefaultTolerance,
		Handler:   handler,
	}
}

func (d *Decoder) HandleTimePair(pair tinyir.TimePair) {
	if pair[0] == 0 && d.hasPending {
		d.pending[1] += pair[1]
		return
	}
	if d.hasPending {
		d.handle(d.pending)
	}
	d.pending, d.hasPending = pair, true
}

// Flush decodes a pair still held back waiting for a pause extension.
func (d *Decoder) Flush() {
	if d.hasPending {
		d.handle(d.pending)
		d.hasPending = false
	}
}

func (d *Decoder) handle(pair tinyir.TimePair) {
	at := d.at
	d.at += pair.Duration()

	t, tol := d.Timing, d.Tolerance
	if near(pair[0], t.LeadBurst, tol) {
		switch {
		case near(pair[1], t.LeadPause, tol):
			d.state, d.buf, d.bitcount = readBits, 0, 0
		case near(pair[1], t.RepeatPause, tol):
			d.state = repeatEnd
		default:
			d.state = waitLead
		}
		d.start = at
		return
	}

	switch d.state {
	case readBits:
		one, err := bit(pair, t, tol)
		if err != nil {
			d.state = waitLead
			d.emit(Transmission{Kind: KindFrame, Raw: d.buf, At: d.start, Err: fmt.Errorf("sim: bit %d: %w", d.bitcount, err)})
			return
		}
		if one {
			d.buf |= 1 << d.bitcount
		}
		d.bitcount++
		if d.bitcount == 32 {
			d.state = frameEnd
		}
	case frameEnd:
		d.state = waitLead
		if !near(pair[0], t.EndBurst, tol) {
			return
		}
		tr := Transmission{Kind: KindFrame, Raw: d.buf, At: d.start}
		tr.Err = tr.Frame.UnmarshalFrame(d.buf)
		d.emit(tr)
	case repeatEnd:
		d.state = waitLead
		if near(pair[0], t.EndBurst, tol) {
			d.emit(Transmission{Kind: KindRepeat, At: d.start})
		}
	}
}

func (d *Decoder) emit(tr Transmission) {
	if d.Handler != nil {
		d.Handler(tr)
	}
}

// Analyze decodes every transmission in pairs with default timing and tolerance.
func Analyze(pairs []tinyir.TimePair) []Transmission {
	var out []Transmission
	d := NewDecoder(func(tr Transmission) { out = append(out, tr) })
	for _, p := range pairs {
		d.HandleTimePair(p)
	}
	d.Flush()
	return out
}

// Count returns how many frames and repeats decoded without error.
func Count(trs []Transmission) (frames, repeats int) {
	for _, tr := range trs {
		if tr.Err != nil {
			continue
		}
		switch tr.Kind {
		case KindFrame:
			frames++
		case KindRepeat:
			repeats++
		}
	}
	return frames, repeats
}
