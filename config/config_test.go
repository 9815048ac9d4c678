package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/sparques/tinyir/nec"
	"github.com/sparques/tinyir/remote"
)

func TestDefaultRemote(t *testing.T) {
	c := qt.New(t)
	cfg, err := Default().Remote()
	c.Assert(err, qt.IsNil)

	c.Assert(cfg.Address, qt.Equals, byte(0x04))
	c.Assert(cfg.Debounce, qt.Equals, time.Millisecond)
	c.Assert(cfg.Timing, qt.Equals, nec.DefaultTiming)
	c.Assert(cfg.Keymap.Mask(), qt.Equals, remote.Mask(0b00111101))

	for bit, want := range map[uint]byte{0: 0x02, 2: 0x00, 3: 0x03, 4: 0x01, 5: 0x08} {
		code, ok := cfg.Keymap.Lookup(remote.Bit(bit))
		c.Assert(ok, qt.IsTrue)
		c.Assert(code, qt.Equals, want)
	}
}

func TestParseJSON5(t *testing.T) {
	c := qt.New(t)
	f, err := Parse([]byte(`{
		// test remote
		address: 7,
		calibration_percent: -2,
		keys: {
			"1": 2,
			"6": 96 // power
		}
	}`))
	c.Assert(err, qt.IsNil)
	c.Assert(f.Address, qt.Equals, 7)
	c.Assert(f.DebounceMicros, qt.Equals, 1000)
	c.Assert(f.Keys, qt.DeepEquals, map[string]int{"1": 0x02, "6": 0x60})

	cfg, err := f.Remote()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Keymap.Keys(), qt.DeepEquals, []remote.Mask{1 << 1, 1 << 6})
	c.Assert(cfg.Timing.LeadBurst, qt.Equals, 8820*time.Microsecond)
}

func TestParseKeepsDefaultKeys(t *testing.T) {
	c := qt.New(t)
	f, err := Parse([]byte(`{debounce_us: 5000}`))
	c.Assert(err, qt.IsNil)
	c.Assert(f.Keys, qt.DeepEquals, Default().Keys)
	c.Assert(f.DebounceMicros, qt.Equals, 5000)
}

func TestParseInvalid(t *testing.T) {
	c := qt.New(t)
	for name, doc := range map[string]string{
		"address":     `{address: 256}`,
		"debounce":    `{debounce_us: -1}`,
		"calibration": `{calibration_percent: 80}`,
		"key name":    `{keys: {"x": 1}}`,
		"key range":   `{keys: {"32": 1}}`,
		"code range":  `{keys: {"0": 300}}`,
		"same bit":    `{keys: {"0": 1, "00": 2}}`,
		"signed bit":  `{keys: {"3": 1, "+3": 2}}`,
	} {
		c.Run(name, func(c *qt.C) {
			_, err := Parse([]byte(doc))
			c.Assert(errors.Is(err, ErrInvalid), qt.IsTrue, qt.Commentf("%v", err))
		})
	}

	_, err := Parse([]byte(`{address: `))
	c.Assert(err, qt.ErrorMatches, "config: .*")
}

func TestLoad(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "remote.json5")
	c.Assert(os.WriteFile(path, []byte(`{address: 1, keys: {"0": 9}}`), 0o644), qt.IsNil)

	f, err := Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(f.Address, qt.Equals, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json5"))
	c.Assert(errors.Is(err, os.ErrNotExist), qt.IsTrue)
}
