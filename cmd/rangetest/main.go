package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cbodonnell/trajectory/pkg/config"
	"github.com/cbodonnell/trajectory/pkg/game"
	"github.com/cbodonnell/trajectory/pkg/log"
	"github.com/cbodonnell/trajectory/pkg/physics"
	"github.com/cbodonnell/trajectory/pkg/units"
)

// maxTicks bounds a single flight; a projectile that never lands in front of the cannon is reported as such
const maxTicks = 10000

func main() {
	configPath := flag.String("config", "", "Path to a config file (json, yaml or toml)")
	power := flag.Float64("power", 10, "Launch power")
	drag := flag.Bool("drag", false, "Enable air drag")
	logLevel := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	log.SetDefaultLogger(log.New(os.Stderr, "", log.DefaultLoggerFlag, parsedLogLevel))

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	world := physics.NewWorld(cfg.Engine, cfg.Viewport.Height)
	session := game.NewSession(game.NewSessionOptions{
		Config:         cfg.Session,
		Engine:         world,
		Origin:         cfg.Viewport.Origin(cfg.Viewport.Height, cfg.Engine.GroundHeight),
		ViewportHeight: cfg.Viewport.Height,
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tangle\tpower\tdrag\tdistance (m)\tticks")
	for _, angle := range []float64{35, 40, 45, 50, 55} {
		projectile, err := session.Fire(angle, *power, *drag)
		if err != nil {
			panic(fmt.Sprintf("Failed to fire: %v", err))
		}
		start := world.Tick()
		for world.Tick()-start < maxTicks && !projectile.HasLanded {
			world.Step(session)
		}
		if !projectile.HasLanded {
			fmt.Fprintf(w, "-\t%.0f\t%.1f\t%v\tno landing\t%d\n", angle, *power, *drag, world.Tick()-start)
			continue
		}
		attempts := session.Attempts()
		attempt := attempts[len(attempts)-1]
		fmt.Fprintf(w, "%d\t%.0f\t%.1f\t%v\t%s\t%d\n", attempt.Sequence, attempt.Angle, attempt.Power, attempt.DragEnabled, units.Format(attempt.Distance), world.Tick()-start)
	}
	w.Flush()
}
