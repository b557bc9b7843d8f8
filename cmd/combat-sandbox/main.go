package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/skybastion/audio"
	"github.com/lixenwraith/skybastion/config"
	"github.com/lixenwraith/skybastion/logging"
	"github.com/lixenwraith/skybastion/scenario"
	"github.com/lixenwraith/skybastion/status"
)

// headlessDefault bounds a headless run when no duration is configured
const headlessDefault = 60 * time.Second

func main() {
	flags := pflag.NewFlagSet("combat-sandbox", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "Path to a TOML config file")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn, error, off")
	flags.String("log-file", "", "Write JSON logs to this file")
	flags.Bool("metrics", false, "Export status counters through OpenTelemetry")
	flags.Duration("tick", 20*time.Millisecond, "Simulation tick")
	flags.Int("players", 1, "Number of player craft")
	flags.Bool("audio", false, "Play combat cues on the audio device")
	flags.Bool("headless", false, "Run without a terminal UI, autopiloted, logging summaries")
	flags.Duration("duration", 0, "Simulated time to run in headless mode")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "combat-sandbox: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "combat-sandbox: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "combat-sandbox: opening log: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	opts := []scenario.Option{scenario.WithLogger(log)}

	if cfg.Sandbox.Audio {
		acfg := audio.DefaultConfig()
		spk, err := audio.NewSpeaker(acfg.SampleRate)
		if err != nil {
			// Non-fatal, the sandbox runs silent
			log.Warn().Err(err).Msg("audio unavailable")
		} else {
			defer spk.Close()
			cues := audio.NewCuePlayer(spk, acfg)
			cues.Preload()
			opts = append(opts, scenario.WithNotifier(cues))
		}
	}

	enc := scenario.Build(cfg, opts...)

	if cfg.Metrics.Enabled {
		reg, err := status.Export(enc.World.Resources.Status, status.Meter())
		if err != nil {
			log.Error().Err(err).Msg("metrics export failed")
		} else {
			defer reg.Unregister()
			log.Info().Int("keys", enc.World.Resources.Status.TotalCount()).Msg("status export registered")
		}
	}

	if cfg.Sandbox.Headless {
		runHeadless(enc, cfg, log)
		return
	}

	v, err := newView(enc, cfg.Sandbox.Tick)
	if err != nil {
		log.Error().Err(err).Msg("terminal init failed")
		fmt.Fprintf(os.Stderr, "combat-sandbox: %v\n", err)
		os.Exit(1)
	}
	v.run()
	v.close()
	log.Info().Object("summary", enc.Summary()).Msg("sandbox closed")
}

// newLogger writes JSON to the configured file, or to stderr in headless mode
// The terminal UI owns stdout and stderr, so without a file it logs nowhere
func newLogger(cfg *config.Config) (zerolog.Logger, io.Closer, error) {
	if cfg.Log.File != "" {
		log, f, err := logging.NewFile(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			return log, nopCloser{}, err
		}
		return log, f, nil
	}
	if cfg.Sandbox.Headless {
		return logging.New(os.Stderr, cfg.Log.Level, logging.Format(cfg.Log.Format)), nopCloser{}, nil
	}
	return zerolog.Nop(), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// runHeadless autopilots the encounter in simulated time and logs a summary every simulated second
func runHeadless(enc *scenario.Encounter, cfg *config.Config, log zerolog.Logger) {
	total := cfg.Sandbox.Duration
	if total <= 0 {
		total = headlessDefault
	}
	tick := cfg.Sandbox.Tick

	enc.Autopilot = true
	start := time.Now()
	for elapsed := time.Duration(0); elapsed < total; elapsed += time.Second {
		chunk := time.Second
		if rest := total - elapsed; rest < chunk {
			chunk = rest
		}
		enc.Advance(chunk, tick)

		s := enc.Summary()
		log.Info().Object("summary", s).Msg("tick")
		if !s.BossAlive {
			log.Info().Dur("game_time", s.GameTime).Msg("boss destroyed")
			break
		}
	}
	log.Info().
		Dur("simulated", enc.World.Resources.Time.GameTime).
		Dur("wall", time.Since(start)).
		Uint64("ticks", enc.Scheduler.TickCount()).
		Msg("headless run finished")

	stats := zerolog.Dict()
	for _, sm := range enc.World.Resources.Status.Snapshot() {
		stats.Float64(sm.Key, sm.Value)
	}
	log.Info().Dict("status", stats).Msg("final telemetry")
}
