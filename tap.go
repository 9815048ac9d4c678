package tinyir

// PairHandler observes emitted TimePairs.
type PairHandler interface {
	HandleTimePair(TimePair)
}

// PairHandlerFunc adapts a function to a PairHandler.
type PairHandlerFunc func(TimePair)

func (f PairHandlerFunc) HandleTimePair(pair TimePair) { f(pair) }

type multiPairHandler []PairHandler

func (mph multiPairHandler) HandleTimePair(pair TimePair) {
	for i := range mph {
		mph[i].HandleTimePair(pair)
	}
}

// MultiPairHandler accepts a list of PairHandlers and returns an object
// that also implements PairHandler. When HandleTimePair is called against it,
// it calls HandleTimePair against all the PairHandlers used to define it.
// In this way you can log and record the same transmission.
// E.G.:
//
//	rec := &sim.Recorder{}
//	tx.SetTap(tinyir.MultiPairHandler(rec, tinyir.PairHandlerFunc(logPair)))
func MultiPairHandler(h ...PairHandler) PairHandler {
	return multiPairHandler(h)
}
