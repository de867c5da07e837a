package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/brettbedarf/webcli/adapters"
	"github.com/brettbedarf/webcli/config"
	"github.com/brettbedarf/webcli/internal/util"
	"github.com/brettbedarf/webcli/requests"
	"github.com/brettbedarf/webcli/server"
	"github.com/brettbedarf/webcli/shell"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Parse command line arguments
	var (
		configPath string
		verbose    int
		nodesDef   string
		serve      bool
		addr       string
		mnt        string
		umount     bool
	)
	flag.StringVar(&configPath, "config", "", "Path to a yaml, json or toml config file")
	flag.StringVar(&nodesDef, "nodes", "", "Path to a yaml or json seed file; the built-in home tree is used when empty")
	flag.StringVar(&nodesDef, "n", "", "--nodes (shorthand)")
	flag.IntVar(&verbose, "verbose", 3, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", 3, "--verbose (shorthand)")
	flag.BoolVar(&serve, "serve", false, "Serve the HTTP API instead of the interactive shell")
	flag.StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	flag.StringVar(&mnt, "mount", "", "Mount the interactive session's tree read-only at this directory")
	flag.BoolVar(&umount, "umount", false,
		"Unmount the mount point first if needed before mounting again. Useful for debuggers that don't exit properly.")
	flag.BoolVar(&umount, "u", false, "--umount (shorthand)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "webcli: %v\n", err)
		os.Exit(1)
	}

	// Flags given explicitly win over file and env config
	override := &config.ConfigOverride{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "verbose", "v":
			override.LogLvl = util.Pointer(verbose)
		case "nodes", "n":
			override.SeedFile = util.Pointer(nodesDef)
		case "addr":
			override.Addr = util.Pointer(addr)
		}
	})
	cfg.Merge(override)

	util.InitializeLogger(cfg.LogLvl, cfg.LogFile)
	logger := util.GetLogger("main")
	if cfg.LogLvl >= util.InfoLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	sources := adapters.NewBuiltinRegistry()
	var seed *requests.Seed
	if cfg.SeedFile != "" {
		seed, err = requests.LoadSeedFile(cfg.SeedFile, sources)
	} else {
		seed, err = requests.DefaultSeed(sources)
	}
	if err != nil {
		logger.Fatal().Err(err).Str("nodes", cfg.SeedFile).Msg("Failed to load seed")
	}
	logger.Debug().Int("directories", len(seed.Dirs)).Int("files", len(seed.Files)).Msg("Seed loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if serve {
		runServer(ctx, cfg, seed)
		return
	}
	runShell(ctx, cfg, seed, mnt, umount)
}

func runServer(ctx context.Context, cfg *config.Config, seed *requests.Seed) {
	logger := util.GetLogger("main")
	srv := server.New(cfg, seed)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	case <-ctx.Done():
		logger.Info().Msg("Received signal, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Failed to shut down HTTP server")
		}
	}
}

func runShell(ctx context.Context, cfg *config.Config, seed *requests.Seed, mnt string, umount bool) {
	logger := util.GetLogger("main")
	sess, err := shell.Open(ctx, cfg, seed)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open session")
	}

	if mnt != "" {
		if umount {
			// ignore the error when nothing is mounted there
			_ = exec.Command("fusermount", "-u", mnt).Run()
		}
		m, err := server.MountTree(sess, mnt, cfg)
		if err != nil {
			logger.Fatal().Err(err).Str("mountpoint", mnt).Msg("Failed to mount session tree")
		}
		defer func() {
			if err := m.Unmount(); err != nil {
				logger.Error().Err(err).Msg("Failed to unmount session tree")
			} else {
				logger.Info().Msg("Session tree unmounted")
			}
		}()
	}

	done := make(chan error, 1)
	go func() {
		done <- repl(ctx, sess, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Failed to read input")
		}
	case <-ctx.Done():
		logger.Info().Msg("Received signal, exiting")
	}
}
