// The server command is the entrypoint for the draw-and-guess game server.
// It loads configuration, connects to storage, seeds the word list, and runs
// the dispatch loop until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/drawguess/server/internal/core"
	"github.com/drawguess/server/internal/data"
	"github.com/drawguess/server/internal/server"
)

var configFlag = flag.String("config", "./", "Path to the directory containing the server config file")

func main() {
	flag.Parse()

	config := core.LoadConfig(*configFlag)

	// An optional positional argument overrides the configured port. Out of
	// range or non-numeric values fall back with a warning instead of failing.
	if args := flag.Args(); len(args) > 0 {
		port, err := strconv.Atoi(args[0])
		if err != nil || port <= 0 || port > 65535 {
			fmt.Fprintf(os.Stderr, "invalid port %q, using port %d\n", args[0], config.GameServer.Port)
		} else {
			config.GameServer.Port = port
		}
	}

	logger, err := core.NewLogger(config)
	if err != nil {
		fmt.Println("error initializing logger:", err)
		os.Exit(1)
	}

	// A missing database degrades the server (auth denied, empty history)
	// rather than preventing startup.
	db, err := data.Connect(config, logger)
	if err != nil {
		logger.Warnf("could not connect to database, continuing without it: %v", err)
		db = data.Unconnected(logger)
	} else {
		if err := data.Migrate(db, config.Debugging.DatabaseLoggingEnabled); err != nil {
			logger.Errorf("error migrating database schema: %v", err)
			os.Exit(1)
		}
		seedWords(config, logger, db)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// SIGINT/SIGTERM shut the server down gracefully.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logger.Info("shutting down...")
		cancel()
	}()

	srv := server.New(config, logger, db)
	if err := srv.Start(ctx); err != nil {
		logger.Errorf("error starting server: %v", err)
		cancel()
		os.Exit(1)
	}

	<-srv.Done()

	if err := db.Close(); err != nil {
		logger.Warnf("error closing database: %v", err)
	}
}

// seedWords loads the initial word list from the first candidate path that
// works. Failing every candidate is a warning, not a startup failure.
func seedWords(config *core.Config, logger *logrus.Logger, db *data.DB) {
	for _, path := range config.Seeding.WordListPaths {
		inserted, err := db.LoadWordsFromFile(path)
		if err != nil {
			continue
		}
		logger.Infof("loaded word list from %s (%d new words)", path, inserted)
		return
	}
	logger.Warnf("could not load a word list from any of %v", config.Seeding.WordListPaths)
}
