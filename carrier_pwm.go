//go:build tinygo

package tinyir

import (
	. "machine"

	"github.com/sparques/pwm"
)

// PWMCarrier runs a hardware PWM at the carrier frequency and gates it onto
// the emitter pin by switching the pin between PWM output and a floating
// input. The PWM counter never stops, so a gate edge can cut at most one
// carrier period short.
type PWMCarrier struct {
	pin     Pin
	pgroup  pwm.Group
	ch      uint8
	duty    uint32
	freq    uint64
	enabled bool
}

// NewPWMCarrier configures pin for a freq Hz carrier at dutyPercent and
// leaves it disabled.
func NewPWMCarrier(pin Pin, freq uint64, dutyPercent uint32) *PWMCarrier {
	pin.Configure(PinConfig{Mode: PinPWM})
	pgroup := pwm.Get(pin)
	pgroup.Configure(PWMConfig{Period: uint64(1e9) / freq})
	ch, _ := pgroup.Channel(pin)
	duty := pgroup.Top() * dutyPercent / 100
	pgroup.Set(ch, duty)
	c := &PWMCarrier{
		pin:     pin,
		pgroup:  pgroup,
		ch:      ch,
		duty:    duty,
		freq:    freq,
		enabled: true,
	}
	c.Disable()
	return c
}

// NewNECCarrier is a 38 kHz, 25% carrier on pin.
func NewNECCarrier(pin Pin) *PWMCarrier {
	return NewPWMCarrier(pin, Freq38Khz, DutyPercent)
}

func (c *PWMCarrier) Enable() {
	if c.enabled {
		return
	}
	c.pin.Configure(PinConfig{Mode: PinPWM})
	c.pgroup.Set(c.ch, c.duty)
	c.enabled = true
}

func (c *PWMCarrier) Disable() {
	if !c.enabled {
		return
	}
	c.pgroup.Set(c.ch, 0)
	c.pin.Configure(PinConfig{Mode: PinInput})
	c.enabled = false
}
