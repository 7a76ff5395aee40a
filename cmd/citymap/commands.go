// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/2dChan/citymap"
	"github.com/2dChan/citymap/dataset"
	"github.com/2dChan/citymap/internal/logging"
	"github.com/2dChan/citymap/svgplot"
	"github.com/2dChan/citymap/termview"
	"github.com/spf13/cobra"
)

type routeFlags struct {
	start string
	dest  string
	path  []string
}

func (r *routeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.start, "start", "", "start node")
	cmd.Flags().StringVar(&r.dest, "dest", "", "destination node")
	cmd.Flags().StringSliceVar(&r.path, "path", nil, "route as comma separated nodes, e.g. Arad,Sibiu,Fagaras")
}

func (a *app) newRenderCmd() *cobra.Command {
	var (
		route   routeFlags
		out     string
		outline bool
	)
	vp := citymap.DefaultViewport
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a map as SVG",
		Long:  `Render a map with its route to an SVG document. Use --out - to write to stdout.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadMap(cmd)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			err = svgplot.Render(&buf, m,
				svgplot.WithViewport(vp),
				svgplot.WithStart(route.start),
				svgplot.WithDest(route.dest),
				svgplot.WithPath(route.path),
				svgplot.WithOutline(outline),
			)
			if err != nil {
				return err
			}

			if out == "-" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			a.log.Info(cmd.Context(), "rendered map",
				logging.String("map", m.Name),
				logging.String("out", out),
				logging.Strings("path", route.path),
				logging.Int("bytes", buf.Len()),
			)
			return nil
		},
	}
	a.addMapFlags(cmd)
	route.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "map.svg", "output file, - for stdout")
	cmd.Flags().Float64Var(&vp.Width, "width", vp.Width, "document width in pixels")
	cmd.Flags().Float64Var(&vp.Height, "height", vp.Height, "document height in pixels")
	cmd.Flags().Float64Var(&vp.Margin, "margin", vp.Margin, "margin around the map in pixels")
	cmd.Flags().BoolVar(&outline, "outline", false, "shade the convex outline of the map")
	return cmd
}

func (a *app) newViewCmd() *cobra.Command {
	var route routeFlags
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show a map in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadMap(cmd)
			if err != nil {
				return err
			}
			a.log.Debug(cmd.Context(), "starting view", logging.String("map", m.Name))
			return termview.Run(m,
				termview.WithStart(route.start),
				termview.WithDest(route.dest),
				termview.WithPath(route.path),
			)
		},
	}
	a.addMapFlags(cmd)
	route.register(cmd)
	return cmd
}

func (a *app) newMapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maps",
		Short: "List built-in maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, name := range dataset.BuiltinNames() {
				m, err := dataset.Builtin(name)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(w, "%-18s %3d nodes %3d edges  arrow scale %.2f\n",
					m.Name, m.NumNodes(), len(m.Edges()), m.Profile.Scale())
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}
