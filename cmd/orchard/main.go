// orchard is a task tree: click the tree to plant a fruit, type to label it,
// drag ripe fruits into the cart and unwanted ones into the bin.
//
// Keys: F1 clears every fruit, F2 empties the cart, F3 toggles the HUD and
// F12 saves a screenshot.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/orchard"
	"github.com/phanxgames/orchard/ecs"
	"github.com/phanxgames/orchard/kv"
	"github.com/phanxgames/orchard/sim"
	"github.com/phanxgames/orchard/view"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file (optional)")
	appName := flag.String("app", "orchard", "application name for the save directory")
	scriptPath := flag.String("script", "", "JSON test script to run (optional)")
	screenshots := flag.String("screenshots", "screenshots", "directory for screenshots")
	debug := flag.Bool("debug", false, "log per-frame timings to stderr")
	hud := flag.Bool("hud", false, "show the FPS and fruit counters")
	flag.Parse()

	cfg := orchard.DefaultConfig()
	if *configPath != "" {
		loaded, err := orchard.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	var store orchard.KeyValueStore
	if g, err := kv.Open(*appName); err != nil {
		log.Printf("[orchard] saving disabled for this run: %v", err)
		store = kv.NewMemory()
	} else {
		store = g
	}

	world := sim.New(sim.DefaultConfig())

	stage := orchard.NewStage(world, cfg)
	stage.SetDebugMode(*debug)

	ecsWorld := donburi.NewWorld()
	tasks := ecs.NewTaskList(ecsWorld)
	stage.SetEventSink(ecs.NewDonburiSink(ecsWorld))

	n := stage.Init(store)
	log.Printf("[orchard] %d fruits restored", n)

	game := view.New(stage, world)
	game.SetTaskList(ecsWorld, tasks)
	game.ShowHUD = *hud
	game.ScreenshotDir = *screenshots

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("script: %v", err)
		}
		runner, err := view.LoadTestScript(data)
		if err != nil {
			log.Fatalf("script: %v", err)
		}
		game.SetTestRunner(runner)
		game.ExitWhenDone = true
	}

	ebiten.SetWindowTitle("Orchard")
	ebiten.SetWindowSize(800, 800)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
