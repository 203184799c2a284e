// Command journalserve serves the directory it lives in over HTTP on port 8000.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/mybrain/journal/internal/config"
	"github.com/mybrain/journal/internal/fileserver"
	"github.com/mybrain/journal/internal/logger"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newApp(logOut io.Writer) *cli.App {
	return &cli.App{
		Name:  "journalserve",
		Usage: "Static file server for the journal pages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   config.DefaultPort,
				Usage:   "HTTP server port",
				EnvVars: []string{config.EnvPort},
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory to serve (default: directory of this executable)",
				EnvVars: []string{config.EnvRoot},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   config.DefaultServeLogLevel,
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{config.EnvLogLevel},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logOut, logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Action: runServe,
	}
}

// serverConfig starts from the defaults and applies --root and --port.
func serverConfig(c *cli.Context) (fileserver.Config, error) {
	cfg, err := fileserver.DefaultConfig()
	if err != nil {
		return fileserver.Config{}, fmt.Errorf("resolve server root: %w", err)
	}
	if root := c.String("root"); root != "" {
		cfg.Root = root
	}
	if port := c.String("port"); port != "" {
		cfg.Port = port
	}
	return cfg, nil
}

func runServe(c *cli.Context) error {
	cfg, err := serverConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fileserver.Run(ctx, cfg)
}
