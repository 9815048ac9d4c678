//go:build tinygo

package remote

import (
	"context"
	"machine"
)

// Keypad reads active-low buttons with pull-ups. Button n is pins[n];
// machine.NoPin leaves a bit unused.
type Keypad struct {
	pins []machine.Pin
	// One slot: any number of edges while awake is a single pending wake.
	wake chan struct{}
}

func NewKeypad(pins ...machine.Pin) *Keypad {
	k := &Keypad{
		pins: pins,
		wake: make(chan struct{}, 1),
	}
	for _, p := range pins {
		if p == machine.NoPin {
			continue
		}
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		p.SetInterrupt(machine.PinFalling|machine.PinRising, k.interruptHandler)
	}
	return k
}

// interruptHandler only wakes the main loop; it must not block.
func (k *Keypad) interruptHandler(machine.Pin) {
	select {
	case k.wake <- struct{}{}:
	default:
	}
}

func (k *Keypad) Read() Mask {
	var m Mask
	for i, p := range k.pins {
		if p != machine.NoPin && !p.Get() {
			m |= Bit(uint(i))
		}
	}
	return m
}

// WaitChange parks the goroutine; with nothing else runnable the scheduler
// puts the core to sleep until the pin interrupt fires.
func (k *Keypad) WaitChange(ctx context.Context) (Mask, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-k.wake:
		return k.Read(), nil
	}
}

// Close detaches the pin interrupts.
func (k *Keypad) Close() {
	for _, p := range k.pins {
		if p != machine.NoPin {
			p.SetInterrupt(machine.PinFalling|machine.PinRising, nil)
		}
	}
}
