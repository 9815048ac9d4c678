package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/sparques/tinyir/remote"
	"github.com/sparques/tinyir/sim"
)

var errScript = errors.New("bad script")

// parseMask reads "idle", "b3", "b0+b2" or a number such as "0x05".
func parseMask(tok string) (remote.Mask, error) {
	if tok == "idle" {
		return 0, nil
	}
	if strings.HasPrefix(tok, "b") {
		var m remote.Mask
		for _, part := range strings.Split(tok, "+") {
			n, err := strconv.ParseUint(strings.TrimPrefix(part, "b"), 10, 5)
			if err != nil || !strings.HasPrefix(part, "b") {
				return 0, fmt.Errorf("%q: %w", tok, errScript)
			}
			m |= remote.Bit(uint(n))
		}
		return m, nil
	}
	n, err := strconv.ParseUint(tok, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", tok, errScript)
	}
	return remote.Mask(n), nil
}

// parseSequence turns `idle b0 b0 b0 idle` into one sample per token.
func parseSequence(script string) ([]remote.Mask, error) {
	toks, err := shlex.Split(script)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, errScript)
	}
	out := make([]remote.Mask, 0, len(toks))
	for _, tok := range toks {
		m, err := parseMask(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// parseTimed turns `10ms:b0 400ms:idle` into button changes.
func parseTimed(script string) ([]sim.Change, error) {
	toks, err := shlex.Split(script)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, errScript)
	}
	out := make([]sim.Change, 0, len(toks))
	for _, tok := range toks {
		at, mask, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, fmt.Errorf("%q wants time:mask: %w", tok, errScript)
		}
		d, err := time.ParseDuration(at)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%q: %w", tok, errScript)
		}
		m, err := parseMask(mask)
		if err != nil {
			return nil, err
		}
		out = append(out, sim.Change{At: d, Mask: m})
	}
	return out, nil
}
