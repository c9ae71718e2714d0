package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/shape"
	"github.com/go-collide/collide/pkg/world"
)

// Config holds all the configuration for the demo.
type Config struct {
	NumBalls   int
	AreaRadius float64
	Margin     float64
	Steps      int
	Help       bool
}

func main() {
	config := parseFlags()
	if config.Help {
		showHelp()
		return
	}

	fmt.Println("Starting collide demo...")
	startTime := time.Now()

	w := buildWorld(config)
	for step := 0; step < config.Steps; step++ {
		w.Update()
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Simulated %d objects over %d steps in %v\n", config.NumBalls, config.Steps, elapsed)
	fmt.Printf("Contact pairs: %d\n", len(w.ContactPairs()))
	fmt.Printf("Proximity pairs: %d\n", len(w.ProximityPairs()))

	ray := mathx.NewRay(mathx.Vec3{0, 0, 0}, mathx.Vec3{1, 0, 0})
	if handle, hit, found := w.FirstInterferenceWithRay(ray, config.AreaRadius*2, world.DefaultGroups); found {
		fmt.Printf("First ray hit: object %d at toi %.3f\n", handle, hit.TOI)
	} else {
		fmt.Println("First ray hit: none")
	}
}

func parseFlags() Config {
	config := Config{}
	flag.IntVar(&config.NumBalls, "balls", 20, "Number of ball objects to scatter")
	flag.Float64Var(&config.AreaRadius, "area", 10, "Half-extent of the scatter volume")
	flag.Float64Var(&config.Margin, "margin", 0.1, "Broad-phase loose margin")
	flag.IntVar(&config.Steps, "steps", 1, "Number of World.Update passes to run")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

func showHelp() {
	fmt.Println("collidedemo")
	fmt.Println("Usage: collidedemo [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	os.Exit(0)
}

// buildWorld scatters random balls inside a cube of the given half-extent
// and registers them with a collision world, half as contact-queried
// objects and half as proximity-queried.
func buildWorld(config Config) *world.World {
	w := world.NewWorld(config.Margin)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < config.NumBalls; i++ {
		pos := mathx.Vec3{
			(rng.Float64()*2 - 1) * config.AreaRadius,
			(rng.Float64()*2 - 1) * config.AreaRadius,
			(rng.Float64()*2 - 1) * config.AreaRadius,
		}
		radius := 0.5 + rng.Float64()
		ball := shape.NewBall(radius)

		if i%2 == 0 {
			w.Add(mathx.Translation(pos), ball, world.DefaultGroups, world.Contacts(0.05, 0.01), i)
		} else {
			w.Add(mathx.Translation(pos), ball, world.DefaultGroups, world.Proximity(0.25), i)
		}
	}

	w.Update()
	return w
}
