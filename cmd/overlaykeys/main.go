package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.design/x/hotkey/mainthread"

	"github.com/TanaroSch/overlay-keys/internal/app"
	"github.com/TanaroSch/overlay-keys/internal/config"
	"github.com/TanaroSch/overlay-keys/internal/resources"
	"github.com/TanaroSch/overlay-keys/internal/ui"
)

const version = "v0.3.0"

func main() {
	configPath := flag.String("config", "config.json", "path to the settings file")
	headless := flag.Bool("headless", false, "run without the tray menu")
	flag.Parse()

	log.Printf("Overlay Keys %s starting...", version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	icon, err := resources.GetIcon()
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	ui.InitGlobalNotifications(cfg.UseNotifications, "Overlay Keys", icon)

	// Handle any panics during execution
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", r)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, version, app.WithHeadless(*headless))
	run := func() {
		if err := application.Run(ctx); err != nil {
			log.Printf("Error: %v", err)
		}
	}

	if *headless {
		// Without the tray nothing else services the OS event loop that
		// hotkey events arrive on.
		mainthread.Init(run)
	} else {
		run()
	}
	log.Println("Overlay Keys stopped.")
}
