// Command shaderlab opens a window and runs one of the shader samples.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"cogentcore.org/core/cli"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/config"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/loader"
	"github.com/Carmen-Shannon/oxy-shaderlab/samples"
)

// GLFW and the GL context must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	cfg, err := baseConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "shaderlab:", err)
		os.Exit(1)
	}

	// shaderlab.toml|yaml is read strictly by baseConfig; -config files go through cli.
	opts := cli.DefaultOptions("shaderlab", "Runs the shader samples in a window.")
	opts.DefaultFiles = nil
	opts.PrintSuccess = false
	cli.Run(opts, &cfg,
		&cli.Cmd[*config.Config]{Func: run, Name: "run", Doc: "run opens a window and runs the configured sample.", Root: true},
		&cli.Cmd[*config.Config]{Func: list, Name: "list", Doc: "list prints the samples that can be run."},
	)
}

// baseConfig reads the first default config file in the working directory, or returns the defaults.
func baseConfig() (config.Config, error) {
	path := config.Find(".")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func list(cfg *config.Config) error {
	for _, s := range samples.All() {
		fmt.Printf("%-12s %s\n", s.Name, s.Description)
	}
	return nil
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// ── Sample ──────────────────────────────────────────────────────────
	sample, err := samples.Lookup(cfg.Sample)
	if err != nil {
		return err
	}
	opts := cfg.EngineOptions(logger)
	if cfg.Shaders.Dir == "" {
		l, err := loader.NewLoader(sample.Shaders(), loader.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("sample %s shaders: %w", sample.Name, err)
		}
		opts = append(opts, engine.WithLoader(l))
	}

	// ── Engine ──────────────────────────────────────────────────────────
	eng, err := engine.NewEngine(sample.New(), opts...)
	if err != nil {
		return err
	}
	logger.Info("running sample", "sample", sample.Name, "backend", cfg.Render.Backend, "mode", cfg.Render.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return eng.Run(ctx)
}
