package remote

import (
	"fmt"
	"math/bits"
	"sort"
)

// Mask is a snapshot of asserted buttons, one bit per button.
type Mask uint32

// Keymap maps single-button masks to NEC command codes. It is immutable
// once built.
type Keymap struct {
	codes map[Mask]byte
	all   Mask
}

// NewKeymap copies entries into a Keymap. Every key must have exactly one
// bit set. Two keys may share a code.
func NewKeymap(entries map[Mask]byte) (Keymap, error) {
	k := Keymap{codes: make(map[Mask]byte, len(entries))}
	for m, code := range entries {
		if bits.OnesCount32(uint32(m)) != 1 {
			return Keymap{}, fmt.Errorf("remote: key %#b: %w", m, ErrKeyNotSingleBit)
		}
		k.codes[m] = code
		k.all |= m
	}
	return k, nil
}

// MustKeymap is NewKeymap for tables fixed at compile time.
func MustKeymap(entries map[Mask]byte) Keymap {
	k, err := NewKeymap(entries)
	if err != nil {
		panic(err)
	}
	return k
}

// Lookup returns the code for a mask with exactly one known button down.
func (k Keymap) Lookup(m Mask) (byte, bool) {
	code, ok := k.codes[m]
	return code, ok
}

// Mask is every button bit the keymap knows.
func (k Keymap) Mask() Mask { return k.all }

// Held reports whether any known button is down in m.
func (k Keymap) Held(m Mask) bool { return m&k.all != 0 }

func (k Keymap) Len() int { return len(k.codes) }

// Keys returns the known single-bit masks in ascending order.
func (k Keymap) Keys() []Mask {
	keys := make([]Mask, 0, len(k.codes))
	for m := range k.codes {
		keys = append(keys, m)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Bit returns the mask for button number n.
func Bit(n uint) Mask { return 1 << n }
