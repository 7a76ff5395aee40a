// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Command citymap draws city route maps as SVG documents or in the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/2dChan/citymap"
	"github.com/2dChan/citymap/dataset"
	"github.com/2dChan/citymap/internal/logging"
	"github.com/2dChan/citymap/roadnet"
	"github.com/spf13/cobra"
)

const defaultMap = "Romania"

type app struct {
	log logging.Logger

	logLevel  string
	logFormat string

	mapName string
	mapFile string
	random  int
	seed    int64
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root, a := newRootCmd(stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		a.log.Error(context.Background(), "command failed", logging.Err(err))
		return 1
	}
	return 0
}

// newRootCmd builds the command tree. Until flags are parsed the logger
// follows LOG_LEVEL and LOG_FORMAT and writes to stderr.
func newRootCmd(stderr io.Writer) (*cobra.Command, *app) {
	a := &app{log: logging.New(logging.ConfigFromEnv(logging.Config{Output: stderr}))}

	root := &cobra.Command{
		Use:   "citymap",
		Short: "Draw city route maps",
		Long: `Draw a city graph with an optional route as an SVG document or
interactively in the terminal. Maps come from the built-in datasets or
from a YAML file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := logging.ConfigFromEnv(logging.Config{
				Level:  a.logLevel,
				Format: a.logFormat,
				Output: cmd.ErrOrStderr(),
			})
			a.log = logging.New(cfg).With(logging.String("cmd", cmd.Name()))
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL or info)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json (default $LOG_FORMAT or text)")

	root.AddCommand(a.newRenderCmd(), a.newViewCmd(), a.newMapsCmd())
	return root, a
}

// addMapFlags registers the map source flags on cmd.
func (a *app) addMapFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.mapName, "map", "m", defaultMap, "built-in map name (see 'citymap maps')")
	cmd.Flags().StringVarP(&a.mapFile, "file", "f", "", "YAML map file")
	cmd.Flags().IntVar(&a.random, "random", 0, "generate a map with this many random nodes")
	cmd.Flags().Int64Var(&a.seed, "seed", 0, "seed for --random")
	cmd.MarkFlagsMutuallyExclusive("map", "file", "random")
}

func (a *app) loadMap(cmd *cobra.Command) (*citymap.Map, error) {
	var (
		m   *citymap.Map
		err error
	)
	switch {
	case cmd.Flags().Changed("random"):
		if a.random <= 0 {
			return nil, fmt.Errorf("citymap: --random must be positive, got %d", a.random)
		}
		m, err = roadnet.RandomMap(fmt.Sprintf("Random %d", a.seed), a.random, a.seed)
	case a.mapFile != "":
		m, err = dataset.LoadFile(a.mapFile)
	default:
		m, err = dataset.Builtin(a.mapName)
	}
	if err != nil {
		return nil, err
	}
	a.log.Debug(cmd.Context(), "map loaded",
		logging.String("map", m.Name),
		logging.Int("nodes", m.NumNodes()),
		logging.Int("edges", len(m.Edges())),
	)
	return m, nil
}
