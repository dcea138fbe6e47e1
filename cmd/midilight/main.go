// Command midilight turns a MIDI input into a real-time smart light
// visualizer. Hue depends on notes, lightness on octaves, saturation on
// velocity; pitch bend shifts the color temperature and the modulation wheel
// controls transition times.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/lumentone/midilight/internal/logger"
	"github.com/lumentone/midilight/sdk/contracts"
	"github.com/lumentone/midilight/sdk/midilight"
	"github.com/lumentone/midilight/sdk/sink"
)

func main() {
	var (
		portName   = flag.String("p", "midilight", "name of the MIDI input port to listen on")
		channels   = flag.String("c", "", "channel(s) to listen on, comma separated (default 0)")
		transition = flag.Int("t", 0, "initial transition duration in ms for color changes")
		debug      = flag.Bool("d", false, "show debug logs")
		confPath   = flag.String("f", "config.yaml", "path to the YAML configuration file")
	)
	flag.Parse()

	var log contracts.Logger
	if *debug {
		log = logger.NewDevelopmentLogger()
	} else {
		log = logger.NewZapLogger()
	}

	conf, err := readConfig(*confPath)
	if err != nil {
		log.Fatal("failed to read config", log.Field().Error("error", err))
	}

	opts := engineOptions(conf, *channels, *transition, *debug, log)
	engine, err := midilight.NewEngine(opts...)
	if err != nil {
		log.Fatal("failed to configure engine", log.Field().Error("error", err))
	}

	if err := registerSinks(engine, conf.Sinks); err != nil {
		log.Fatal("failed to register light sinks", log.Field().Error("error", err))
	}

	defer midi.CloseDriver()

	name := conf.MidiIn
	if name == "" || isFlagSet("p") {
		name = *portName
	}
	in, err := midi.FindInPort(name)
	if err != nil {
		log.Error("can't find midi input", log.Field().String("port", name))
		log.Fatal("available inputs", log.Field().String("ports", fmt.Sprintf("%v", midi.GetInPorts())))
	}

	events := make(chan contracts.Event, 256)
	stop, err := midi.ListenTo(in, forwardMIDI(events))
	if err != nil {
		log.Fatal("failed to listen to midi", log.Field().Error("error", err))
	}

	log.Info("listening for MIDI events", log.Field().String("port", in.String()))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := engine.Run(ctx, events); err != nil && ctx.Err() == nil {
		log.Error("engine stopped", log.Field().Error("error", err))
	}
	stop()
}

// engineOptions merges config file values and flags into engine options.
// Flags win where both are given.
func engineOptions(conf *conf, channelFlag string, transitionMillis int, debug bool, log contracts.Logger) []contracts.Option {
	opts := []contracts.Option{contracts.WithLogger(log)}
	if debug {
		opts = append(opts, contracts.WithLogLevel(contracts.DebugLevel))
	}

	chs := conf.Channels
	if channelFlag != "" {
		chs = parseChannels(channelFlag)
	}
	if len(chs) > 0 {
		opts = append(opts, contracts.WithChannels(chs...))
	}

	millis := conf.TransitionMillis
	if transitionMillis != 0 {
		millis = transitionMillis
	}
	if millis != 0 {
		opts = append(opts, contracts.WithDefaultTransition(time.Duration(millis)*time.Millisecond))
	}

	if conf.SendIntervalMillis != 0 {
		opts = append(opts, contracts.WithSendInterval(time.Duration(conf.SendIntervalMillis)*time.Millisecond))
	}
	if conf.Lightness != nil {
		opts = append(opts, contracts.WithLightnessRange(conf.Lightness.Min, conf.Lightness.Max))
	}
	if conf.Kelvin != nil {
		opts = append(opts, contracts.WithKelvinRange(conf.Kelvin.Min, conf.Kelvin.Max))
	}
	return opts
}

// registerSinks builds the configured light sinks. Without configuration the
// visualizer still runs, it just has nowhere to send light states.
func registerSinks(engine *midilight.Engine, sinks []sinkConf) error {
	for _, sc := range sinks {
		switch sc.Kind {
		case "homeassistant":
			token := os.Getenv(sc.TokenEnv)
			if err := engine.AddSink(sink.NewHomeAssistant(sc.URL, sc.Entity, token)); err != nil {
				return err
			}
		case "osc":
			if err := engine.AddSink(sink.NewOSC(sc.Host, sc.Port, sc.Address)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown sink kind %q", sc.Kind)
		}
	}
	return nil
}

// forwardMIDI decodes incoming messages into engine events. The send never
// blocks the MIDI driver callback; if the buffer is full the event is lost,
// which only happens when intake has stalled entirely.
func forwardMIDI(events chan<- contracts.Event) func(msg midi.Message, timestampms int32) {
	return func(msg midi.Message, _ int32) {
		var ch, key, vel, cc, val uint8
		var rel int16
		var abs uint16

		var ev contracts.Event
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			ev = contracts.Event{Kind: contracts.NoteOnEvent, Channel: ch, Note: key, Velocity: vel}
		case msg.GetNoteEnd(&ch, &key):
			ev = contracts.Event{Kind: contracts.NoteOffEvent, Channel: ch, Note: key}
		case msg.GetControlChange(&ch, &cc, &val):
			ev = contracts.Event{Kind: contracts.ControlChangeEvent, Channel: ch, Controller: cc, Value: val}
		case msg.GetPitchBend(&ch, &rel, &abs):
			ev = contracts.Event{Kind: contracts.PitchBendEvent, Channel: ch, Bend: contracts.NormalizeBend(rel)}
		default:
			return
		}

		select {
		case events <- ev:
		default:
		}
	}
}

// parseChannels parses the -c flag value as a comma separated channel list.
func parseChannels(value string) []uint8 {
	var out []uint8
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			continue
		}
		out = append(out, uint8(n))
	}
	return out
}

// isFlagSet reports whether a flag was passed explicitly.
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
