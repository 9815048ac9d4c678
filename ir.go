package tinyir

import "time"

const (
	// Freq38Khz is the most commonly used frequency for IR remotes
	Freq38Khz = 38000

	// DutyPercent is the share of each carrier period the emitter is driven.
	// A quarter keeps the LED bright enough while saving battery.
	DutyPercent = 25
)

// TimePair encodes a burst (carrier on) followed by a pause (carrier off).
type TimePair [2]time.Duration

// Burst is how long the carrier is enabled.
func (p TimePair) Burst() time.Duration { return p[0] }

// Pause is how long the line stays quiet after the burst.
func (p TimePair) Pause() time.Duration { return p[1] }

// Duration is the total time the pair takes to send.
func (p TimePair) Duration() time.Duration { return p[0] + p[1] }

// FrameMarshaller defines an interface for marshalling data to slice of TimePairs
type FrameMarshaller interface {
	MarshalFrame() []TimePair
}

// Carrier switches the modulated carrier on the emitter line.
// Enabling an enabled carrier or disabling a disabled one does nothing.
type Carrier interface {
	Enable()
	Disable()
}

// Waiter blocks the caller for a duration.
type Waiter interface {
	Wait(time.Duration)
}
