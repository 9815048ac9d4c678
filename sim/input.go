package sim

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sparques/tinyir/remote"
)

// ErrScriptDone is returned by WaitChange once a script has nothing left.
var ErrScriptDone = fmt.Errorf("sim: script done: %w", remote.ErrInputClosed)

// SequenceInput hands out one scripted sample per Read. WaitChange skips
// idle samples and returns the next non-idle one without consuming it.
// Reads past the end see idle.
type SequenceInput struct {
	samples []remote.Mask

	// OnSuspend, if set, runs each time the controller goes to sleep.
	OnSuspend func()
	// Reads counts Read calls.
	Reads int
}

func NewSequenceInput(samples ...remote.Mask) *SequenceInput {
	return &SequenceInput{samples: append([]remote.Mask(nil), samples...)}
}

func (s *SequenceInput) Read() remote.Mask {
	s.Reads++
	if len(s.samples) == 0 {
		return 0
	}
	m := s.samples[0]
	s.samples = s.samples[1:]
	return m
}

func (s *SequenceInput) WaitChange(ctx context.Context) (remote.Mask, error) {
	if s.OnSuspend != nil {
		s.OnSuspend()
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	for len(s.samples) > 0 && s.samples[0] == 0 {
		s.samples = s.samples[1:]
	}
	if len(s.samples) == 0 {
		return 0, ErrScriptDone
	}
	return s.samples[0], nil
}

// Remaining is the number of samples not yet read.
func (s *SequenceInput) Remaining() int { return len(s.samples) }

// Change sets the buttons to Mask at clock time At.
type Change struct {
	At   time.Duration
	Mask remote.Mask
}

// TimedInput plays button changes against a Clock. Changes that happened
// while the controller was busy are pending and wake it at once, like a
// latched pin-change flag.
type TimedInput struct {
	clock   *Clock
	changes []Change
	next    int

	OnSuspend func()
	// Wakes counts WaitChange calls that returned a change.
	Wakes int
}

func NewTimedInput(clock *Clock, changes ...Change) *TimedInput {
	cs := append([]Change(nil), changes...)
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].At < cs[j].At })
	return &TimedInput{clock: clock, changes: cs}
}

func (t *TimedInput) Read() remote.Mask {
	var m remote.Mask
	now := t.clock.Now()
	for _, c := range t.changes {
		if c.At > now {
			break
		}
		m = c.Mask
	}
	return m
}

func (t *TimedInput) WaitChange(ctx context.Context) (remote.Mask, error) {
	if t.OnSuspend != nil {
		t.OnSuspend()
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if t.next >= len(t.changes) {
		return 0, ErrScriptDone
	}
	now := t.clock.Now()
	if t.changes[t.next].At > now {
		t.clock.AdvanceTo(t.changes[t.next].At)
		now = t.clock.Now()
	}
	for t.next < len(t.changes) && t.changes[t.next].At <= now {
		t.next++
	}
	t.Wakes++
	return t.Read(), nil
}
