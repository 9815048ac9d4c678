// remote is the button side of the IR remote: it sleeps until a button
// changes, debounces, sends the NEC frame for the pressed button and keeps
// sending repeat codes until every button is released.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sparques/tinyir/nec"
)

// DefaultDebounce is the settle time after a wake before buttons are read.
// It is short for mechanical switches; check it against the real keys.
const DefaultDebounce = time.Millisecond

// Input samples the buttons.
type Input interface {
	// Read returns the buttons down right now.
	Read() Mask
	// WaitChange suspends until any button changes level and returns the
	// mask seen on waking. A change that happened since the last call
	// returns at once.
	WaitChange(ctx context.Context) (Mask, error)
}

// Transmitter is what the controller needs from a *tinyir.TxDevice.
type Transmitter interface {
	nec.Transmitter
	// Pause turns the carrier off and waits d.
	Pause(d time.Duration)
	// Idle turns the carrier off.
	Idle()
}

// Config is fixed for the lifetime of a Controller.
type Config struct {
	Address byte
	Keymap  Keymap
	// Debounce defaults to DefaultDebounce when zero.
	Debounce time.Duration
	// Timing defaults to nec.DefaultTiming when zero.
	Timing nec.Timing
}

// State is where the controller is in a session.
type State uint8

const (
	StateIdleSleep State = iota
	StateWoken
	StateTransmitting
	StateRepeating
)

func (s State) String() string {
	switch s {
	case StateIdleSleep:
		return "idle-sleep"
	case StateWoken:
		return "woken"
	case StateTransmitting:
		return "transmitting"
	case StateRepeating:
		return "repeating"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Session summarises one wake.
type Session struct {
	// Mask is the debounced mask, limited to keymap bits.
	Mask    Mask
	Code    byte
	Sent    bool
	Repeats int
}

type Controller struct {
	cfg   Config
	in    Input
	tx    Transmitter
	enc   *nec.Encoder
	log   logrus.FieldLogger
	state State
}

type Option func(*Controller)

// WithLogger sends session logging to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = l }
}

func New(cfg Config, in Input, tx Transmitter, opts ...Option) (*Controller, error) {
	if in == nil {
		return nil, ErrNilInput
	}
	if tx == nil {
		return nil, ErrNilTransmitter
	}
	if cfg.Debounce < 0 {
		return nil, fmt.Errorf("remote: %v: %w", cfg.Debounce, ErrDebounce)
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Timing == (nec.Timing{}) {
		cfg.Timing = nec.DefaultTiming
	}

	enc := nec.NewEncoder(tx, cfg.Address)
	enc.Timing = cfg.Timing

	quiet := logrus.New()
	quiet.Out = io.Discard
	c := &Controller{
		cfg: cfg,
		in:  in,
		tx:  tx,
		enc: enc,
		log: quiet,
	}
	for _, opt := range opts {
		opt(c)
	}
	tx.Idle()
	return c, nil
}

// State is the controller's current state.
func (c *Controller) State() State { return c.state }

// Config returns the effective configuration.
func (c *Controller) Config() Config { return c.cfg }

// Run handles sessions until ctx ends or the input closes. A closed input
// returns nil.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if _, err := c.Step(ctx); err != nil {
			if errors.Is(err, ErrInputClosed) {
				return nil
			}
			return err
		}
	}
}

// Step sleeps until the next input change and handles that one session.
// A frame or repeat code in progress always runs to the end; ctx is only
// checked while asleep and between repeat codes.
func (c *Controller) Step(ctx context.Context) (Session, error) {
	c.tx.Idle()
	c.setState(StateIdleSleep)
	if _, err := c.in.WaitChange(ctx); err != nil {
		return Session{}, err
	}

	c.setState(StateWoken)
	c.tx.Pause(c.cfg.Debounce)
	s := Session{Mask: c.in.Read() & c.cfg.Keymap.Mask()}

	code, ok := c.cfg.Keymap.Lookup(s.Mask)
	if !ok {
		c.log.WithField("mask", fmt.Sprintf("%#b", s.Mask)).Debug("no single key, ignored")
		c.setState(StateIdleSleep)
		return s, nil
	}

	c.setState(StateTransmitting)
	c.enc.SendFrame(code)
	s.Code, s.Sent = code, true

	c.setState(StateRepeating)
	var err error
	for c.cfg.Keymap.Held(c.in.Read()) {
		if err = ctx.Err(); err != nil {
			break
		}
		c.tx.Pause(c.cfg.Timing.RepeatBefore)
		c.enc.SendRepeat()
		c.tx.Pause(c.cfg.Timing.RepeatAfter)
		s.Repeats++
	}

	c.tx.Idle()
	c.setState(StateIdleSleep)
	c.log.WithFields(logrus.Fields{
		"mask":    fmt.Sprintf("%#b", s.Mask),
		"code":    fmt.Sprintf("%#02x", s.Code),
		"repeats": s.Repeats,
	}).Debug("session done")
	return s, err
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	c.log.WithFields(logrus.Fields{"from": c.state, "state": s}).Trace("state")
	c.state = s
}
