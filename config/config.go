// config loads the remote's keymap and timing adjustments from JSON5.
//
//	{
//	  address: 4,            // NEC device address
//	  debounce_us: 1000,
//	  calibration_percent: 0,
//	  keys: { "0": 2, "2": 0 } // button bit -> command code
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/flynn/json5"

	"github.com/sparques/tinyir/nec"
	"github.com/sparques/tinyir/remote"
	"github.com/sparques/tinyir/x/mathx"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// maxBit is the highest button bit a remote.Mask can carry.
const maxBit = 31

// File is the on-disk form of a remote configuration.
type File struct {
	Address            int            `json:"address"`
	DebounceMicros     int            `json:"debounce_us"` // 0 means remote.DefaultDebounce
	CalibrationPercent int            `json:"calibration_percent"`
	Keys               map[string]int `json:"keys"`
}

// Default is the LG TV layout of the five-button remote: buttons on bits
// 0, 2, 3, 4 and 5 (bit 1 drives the LED).
func Default() File {
	return File{
		Address:        0x04,
		DebounceMicros: 1000,
		Keys: map[string]int{
			"0": 0x02, // volume +
			"2": 0x00, // channel +
			"3": 0x03, // volume -
			"4": 0x01, // channel -
			"5": 0x08, // power
		},
	}
}

// Parse reads a JSON5 document on top of Default. A document with a keys
// object replaces the default keys entirely.
func Parse(data []byte) (File, error) {
	f := Default()
	f.Keys = nil
	if err := json5.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}
	if f.Keys == nil {
		f.Keys = Default().Keys
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Load reads and parses the file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate checks ranges without building anything.
func (f File) Validate() error {
	if !mathx.Between(f.Address, 0, 0xFF) {
		return fmt.Errorf("config: address %d: %w", f.Address, ErrInvalid)
	}
	if f.DebounceMicros < 0 {
		return fmt.Errorf("config: debounce_us %d: %w", f.DebounceMicros, ErrInvalid)
	}
	if !mathx.Between(f.CalibrationPercent, -nec.MaxCalibration, nec.MaxCalibration) {
		return fmt.Errorf("config: calibration_percent %d: %w", f.CalibrationPercent, ErrInvalid)
	}
	seen := make(map[uint]bool, len(f.Keys))
	for k, code := range f.Keys {
		n, err := parseBit(k)
		if err != nil {
			return err
		}
		if seen[n] {
			return fmt.Errorf("config: key %q duplicates bit %d: %w", k, n, ErrInvalid)
		}
		seen[n] = true
		if !mathx.Between(code, 0, 0xFF) {
			return fmt.Errorf("config: key %q code %d: %w", k, code, ErrInvalid)
		}
	}
	return nil
}

func parseBit(k string) (uint, error) {
	n, err := strconv.Atoi(k)
	if err != nil || !mathx.Between(n, 0, maxBit) {
		return 0, fmt.Errorf("config: key %q is not a bit 0..%d: %w", k, maxBit, ErrInvalid)
	}
	return uint(n), nil
}

// Remote builds the controller configuration.
func (f File) Remote() (remote.Config, error) {
	if err := f.Validate(); err != nil {
		return remote.Config{}, err
	}
	entries := make(map[remote.Mask]byte, len(f.Keys))
	for k, code := range f.Keys {
		n, _ := parseBit(k)
		entries[remote.Bit(n)] = byte(code)
	}
	keymap, err := remote.NewKeymap(entries)
	if err != nil {
		return remote.Config{}, fmt.Errorf("config: %w", err)
	}
	timing, err := nec.DefaultTiming.Calibrated(f.CalibrationPercent)
	if err != nil {
		return remote.Config{}, fmt.Errorf("config: %w", err)
	}
	return remote.Config{
		Address:  byte(f.Address),
		Keymap:   keymap,
		Debounce: time.Duration(f.DebounceMicros) * time.Microsecond,
		Timing:   timing,
	}, nil
}
