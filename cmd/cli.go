package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/twweather/internal/config"
	"github.com/okian/twweather/internal/domain/city"
	"github.com/okian/twweather/internal/domain/forecast"
	"github.com/okian/twweather/pkg/logger"

	"github.com/spf13/cobra"
)

// cli holds state shared by every subcommand once PersistentPreRunE has run.
type cli struct {
	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "twweather",
		Short:         "Taiwan 36-hour weather forecast API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), c.cfg, c.log)
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), c.cfg, c.log)
			},
		},
		&cobra.Command{
			Use:   "forecast <city>...",
			Short: "Fetch forecasts once and print them as JSON",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.forecast(cmd, args)
			},
		},
		&cobra.Command{
			Use:   "cities",
			Short: "List supported city keys",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return listCities(cmd.OutOrStdout())
			},
		},
	)
	return root
}

// setup loads configuration and initializes the global logger. Logs go to
// stderr so command output on stdout stays machine readable.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if err := logger.Init(
		logger.WithFormat(cfg.LogFormat),
		logger.WithWriter(cmd.ErrOrStderr()),
	); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}
	c.cfg = cfg
	c.log = logger.Named("twweather")
	return nil
}

func (c *cli) forecast(cmd *cobra.Command, args []string) error {
	keys := make([]city.Key, 0, len(args))
	for _, arg := range args {
		k, ok := city.Parse(arg)
		if !ok {
			return &city.ConfigurationError{Key: city.Key(arg)}
		}
		keys = append(keys, k)
	}

	svc := newService(c.cfg, c.log)
	out := make([]forecast.Forecast, 0, len(keys))
	for _, k := range keys {
		f, err := svc.Forecast(cmd.Context(), k)
		if err != nil {
			return err
		}
		out = append(out, f)
	}
	return writeIndented(cmd.OutOrStdout(), out)
}

type cityEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Path string `json:"path"`
}

func listCities(w io.Writer) error {
	entries := make([]cityEntry, 0, len(city.Keys()))
	for _, k := range city.Keys() {
		entries = append(entries, cityEntry{
			Key:  k.String(),
			Name: k.DisplayName(),
			Path: "/api/weather/" + k.String(),
		})
	}
	return writeIndented(w, entries)
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
