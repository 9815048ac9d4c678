//go:build tinygo

package tinyir

import (
	"time"

	"tinygo.org/x/drivers/delay"
)

// BusyWaiter spins the CPU for each wait. Bit timing needs it; the
// scheduler's sleep granularity is too coarse on small parts.
type BusyWaiter struct{}

func (BusyWaiter) Wait(d time.Duration) {
	delay.Sleep(d)
}
