package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/goliatone/go-formframe/internal/logging"
	"github.com/goliatone/go-formframe/internal/walk"
	"github.com/goliatone/go-formframe/pkg/frames"
)

func main() {
	base := flag.String("url", "http://localhost:8080", "server base URL")
	path := flag.String("path", "/addresses/new", "form page to walk")
	noScript := flag.Bool("no-script", false, "leave the form unenhanced and use the fallback submit")
	level := flag.String("log-level", "warn", "debug, info, warn or error")
	flag.Parse()

	lvl, err := logging.ParseLevel(*level)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	logger := logging.New(lvl)

	host, err := frames.New(*base, frames.WithLogger(logger), frames.WithScripting(!*noScript))
	if err != nil {
		log.Fatalf("Failed to create host: %v", err)
	}
	walker, err := walk.New(host, walk.NewSurveyPrompter(), walk.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create walker: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loc, err := walker.Run(ctx, *path)
	switch {
	case errors.Is(err, walk.ErrAborted), errors.Is(err, walk.ErrCancelled):
		fmt.Println("Nothing saved.")
	case err != nil:
		log.Fatalf("Walk failed: %v", err)
	default:
		fmt.Printf("Address saved at %s\n", loc)
	}
}
