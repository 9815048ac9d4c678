package nec

import "github.com/sparques/tinyir"

// Transmitter emits single TimePairs; *tinyir.TxDevice is one.
type Transmitter interface {
	SendPair(tinyir.TimePair)
}

// Encoder sends NEC codes for one device address. Every call blocks until
// the last pair has gone out and cannot be interrupted part way.
type Encoder struct {
	Addr   byte
	Timing Timing

	tx Transmitter
}

func NewEncoder(tx Transmitter, addr byte) *Encoder {
	return &Encoder{
		Addr:   addr,
		Timing: DefaultTiming,
		tx:     tx,
	}
}

// SendByte sends 8 data bits of value, least significant first.
func (e *Encoder) SendByte(value byte) {
	e.Timing.sendByte(e.tx, value)
}

// SendFrame sends start, Addr, ^Addr, code, ^code and the end burst.
func (e *Encoder) SendFrame(code byte) {
	e.Timing.sendFrame(e.tx, Frame{Addr: e.Addr, Cmd: code})
}

// SendRepeat sends one repeat code: repeat burst and pause, then the end burst.
func (e *Encoder) SendRepeat() {
	e.Timing.sendRepeat(e.tx)
}
