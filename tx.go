package tinyir

import "time"

// TxDevice emits TimePairs by gating a Carrier with a Waiter.
type TxDevice struct {
	carrier Carrier
	wait    Waiter
	tap     PairHandler
}

func NewTxDevice(carrier Carrier, wait Waiter) *TxDevice {
	carrier.Disable()
	return &TxDevice{
		carrier: carrier,
		wait:    wait,
	}
}

// SetTap registers a handler that sees every pair after it has been sent.
// Pass nil to remove it.
func (tx *TxDevice) SetTap(h PairHandler) {
	tx.tap = h
}

// SendPair enables the carrier for the burst, disables it and then holds
// the line quiet for the pause. A zero burst never touches Enable.
func (tx *TxDevice) SendPair(pair TimePair) {
	if pair[0] > 0 {
		tx.carrier.Enable()
		tx.wait.Wait(pair[0])
	}
	tx.carrier.Disable()
	if pair[1] > 0 {
		tx.wait.Wait(pair[1])
	}
	if tx.tap != nil {
		tx.tap.HandleTimePair(pair)
	}
}

func (tx *TxDevice) SendPairs(pairs ...TimePair) {
	for _, p := range pairs {
		tx.SendPair(p)
	}
}

func (tx *TxDevice) SendFrame(fm FrameMarshaller) {
	tx.SendPairs(fm.MarshalFrame()...)
}

func (tx *TxDevice) SendFrames(fms ...FrameMarshaller) {
	for _, fm := range fms {
		tx.SendFrame(fm)
	}
}

// Pause makes sure the carrier is off and waits d. It is not reported to the tap.
func (tx *TxDevice) Pause(d time.Duration) {
	tx.carrier.Disable()
	if d > 0 {
		tx.wait.Wait(d)
	}
}

// Idle turns the carrier off. Call before suspending.
func (tx *TxDevice) Idle() {
	tx.carrier.Disable()
}
