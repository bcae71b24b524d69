package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/stapel/wmwm-sub000/internal/config"
	"github.com/stapel/wmwm-sub000/internal/platform"
	"github.com/stapel/wmwm-sub000/internal/wm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "wmwm",
		Short:         "A small reparenting window manager for X11",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd.Flags())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			return run(cfg)
		},
	}
	opts.register(cmd.Flags())
	return cmd
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    !term.IsTerminal(int(os.Stderr.Fd())),
		QuoteEmptyFields: true,
	})
	return log, nil
}

func run(cfg *config.Config) error {
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM, unix.SIGHUP)
	defer stop()

	backend, err := platform.NewLinuxBackend(cfg.Display, log.WithField("component", "x11"))
	if err != nil {
		log.WithError(err).Fatal("failed to take over the display")
	}
	defer backend.Close()

	manager, err := wm.New(backend, cfg, log.WithField("component", "wm"))
	if err != nil {
		backend.Close()
		log.WithError(err).Fatal("failed to set up window manager")
	}

	log.WithFields(logrus.Fields{
		"border":  cfg.BorderWidth,
		"iconify": cfg.AllowIconify,
	}).Info("wmwm started")
	manager.Start()

	if err := manager.Run(ctx); err != nil {
		if errors.Is(err, wm.ErrConnectionClosed) {
			log.Error("display connection closed")
		} else {
			log.WithError(err).Error("event loop failed")
		}
		return err
	}
	log.Info("wmwm stopped")
	return nil
}
