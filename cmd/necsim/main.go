// necsim runs the remote's controller against simulated hardware and
// prints what a receiver would have seen.
//
//	necsim -script "idle b0 b0 b0 idle"
//	necsim -timed -script "10ms:b0 400ms:idle 600ms:b2+b3 700ms:idle"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sparques/tinyir"
	"github.com/sparques/tinyir/config"
	"github.com/sparques/tinyir/remote"
	"github.com/sparques/tinyir/sim"
)

var log = logrus.New()

type flagSet struct {
	configPath *string
	script     *string
	timed      *bool
	level      *string
	pairs      *bool
}

func (fs *flagSet) parse() {
	fs.configPath = flag.String("config", "", "JSON5 keymap file (default: built-in LG TV table)")
	fs.script = flag.String("script", "idle b0 b0 b0 idle", "button samples, or time:mask changes with -timed")
	fs.timed = flag.Bool("timed", false, "treat -script as timed changes on the virtual clock")
	fs.level = flag.String("level", "info", "log level")
	fs.pairs = flag.Bool("pairs", false, "print every emitted pulse pair")
	flag.Parse()
}

func main() {
	var fs flagSet
	fs.parse()

	log.Formatter = new(logrus.TextFormatter)
	log.Out = os.Stdout
	lvl, err := logrus.ParseLevel(*fs.level)
	if err != nil {
		log.Fatal(err)
	}
	log.Level = lvl

	if err := run(fs); err != nil {
		log.Fatal(err)
	}
}

func run(fs flagSet) error {
	file := config.Default()
	if *fs.configPath != "" {
		var err error
		if file, err = config.Load(*fs.configPath); err != nil {
			return err
		}
	}
	cfg, err := file.Remote()
	if err != nil {
		return err
	}

	rig := sim.NewRig()
	var in remote.Input
	if *fs.timed {
		changes, err := parseTimed(*fs.script)
		if err != nil {
			return err
		}
		in = sim.NewTimedInput(rig.Clock, changes...)
	} else {
		samples, err := parseSequence(*fs.script)
		if err != nil {
			return err
		}
		in = sim.NewSequenceInput(samples...)
	}

	if *fs.pairs {
		rig.Tx.SetTap(tinyir.PairHandlerFunc(func(p tinyir.TimePair) {
			log.WithFields(logrus.Fields{"burst": p.Burst(), "pause": p.Pause(), "t": rig.Clock.Now()}).Info("pair")
		}))
	}

	ctrl, err := remote.New(cfg, in, rig.Tx, remote.WithLogger(log))
	if err != nil {
		return err
	}
	if err := ctrl.Run(context.Background()); err != nil {
		return err
	}

	bursts := rig.Carrier.Bursts()
	origin := rig.Clock.Now()
	if len(bursts) > 0 {
		origin = bursts[0].Start
	}
	trs := sim.Analyze(rig.Carrier.Pairs())
	for _, tr := range trs {
		e := log.WithFields(logrus.Fields{"kind": tr.Kind, "t": origin + tr.At})
		if tr.Kind == sim.KindFrame {
			e = e.WithFields(logrus.Fields{
				"addr": fmt.Sprintf("%#02x", tr.Frame.Addr),
				"cmd":  fmt.Sprintf("%#02x", tr.Frame.Cmd),
				"raw":  fmt.Sprintf("%08X", tr.Raw),
			})
		}
		if tr.Err != nil {
			e.WithError(tr.Err).Warn("decode failed")
			continue
		}
		e.Info("received")
	}
	frames, repeats := sim.Count(trs)
	log.WithFields(logrus.Fields{
		"frames":  frames,
		"repeats": repeats,
		"elapsed": rig.Clock.Now(),
	}).Info("done")
	return nil
}
