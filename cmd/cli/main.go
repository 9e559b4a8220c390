package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"distviz/adapters/excel"
	"distviz/domain/core"
	"distviz/domain/distribution"
	"distviz/internal"
	"distviz/internal/controller"
	"distviz/internal/render"
	"distviz/internal/sampling"
	"distviz/internal/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "distviz-cli",
		Short:         "Evaluate and render probability distributions from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var logLevel string
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "ERROR|WARN|INFO|DEBUG|TRACE")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		internal.SetDefaultLevel(internal.ParseLogLevel(logLevel))
	}

	rootCmd.AddCommand(
		newListCmd(),
		newDescribeCmd(),
		newSampleCmd(),
		newRenderCmd(),
	)
	return rootCmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the distribution catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tSUPPORT\tPARAMETERS\tNAME")
			for _, m := range distribution.All() {
				spec := m.Spec()
				names := make([]string, 0, len(spec.Parameters))
				for _, p := range spec.Parameters {
					names = append(names, p.Name)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", spec.Kind, spec.Support, strings.Join(names, ","), spec.Name)
			}
			return w.Flush()
		},
	}
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [kind]",
		Short: "Print the markdown description of a distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := lookup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.Spec().Description())
			return nil
		},
	}
}

func newSampleCmd() *cobra.Command {
	var sets []string
	var resolution int
	var outFile string

	cmd := &cobra.Command{
		Use:   "sample [kind]",
		Short: "Print the sampled series and its summary",
		Long: `Evaluate a distribution over its display window and print one x,y pair per line.

With --out the series is written as CSV or, for a .xlsx path, as a workbook
with a Summary sheet.

Example: distviz-cli sample binomial --set n=20 --set p=0.3 --out binomial.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := lookup(args[0])
			if err != nil {
				return err
			}
			ctrl, err := controller.New(m)
			if err != nil {
				return err
			}
			for _, s := range sets {
				name, raw, err := splitAssignment(s)
				if err != nil {
					return err
				}
				if _, err := ctrl.Set(name, raw); err != nil {
					return err
				}
			}

			series := sampling.Sample(ctrl.Validated(), resolution)
			if outFile != "" {
				return writeSeries(outFile, excel.NewSeriesTable(ctrl.Validated(), series))
			}
			out := cmd.OutOrStdout()
			for _, pt := range series.Points {
				fmt.Fprintf(out, "%g,%g\n", pt.X, pt.Y)
			}
			sum := sampling.Summarize(series)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\npoints=%d mass=%.4f max=%.4f mean=%.4f poles=%d\n",
				distribution.Caption(ctrl.Validated()), sum.Points, sum.Mass, sum.MaxY, sum.Mean, sum.Poles)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Parameter assignment name=value (repeatable, applied in order)")
	cmd.Flags().IntVar(&resolution, "resolution", 0, "Sample count for continuous distributions (0 = default)")
	cmd.Flags().StringVar(&outFile, "out", "", "Write the series to a .csv or .xlsx file instead of stdout")
	return cmd
}

func writeSeries(path string, table *excel.SeriesTable) error {
	w, err := excel.NewDataWriter(filepath.Ext(path))
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := w.Write(f, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newRenderCmd() *cobra.Command {
	var sets []string
	var width, resolution, gridResolution int
	var formatName, out, exportDir string
	var surface bool

	cmd := &cobra.Command{
		Use:   "render [kind]",
		Short: "Render a chart to a file",
		Long: `Render a distribution chart at the given container width.

With --out the frame is written to that path; otherwise it is stored under
--export-dir using the same keys as the HTTP export endpoint.

Example: distviz-cli render binomial --set n=20 --set p=0.3 --width 800 --format svg --out chart.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := core.ParseKind(args[0])
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(formatName)
			if err != nil {
				return err
			}
			if width <= 0 || width > render.MaxWidth {
				return fmt.Errorf("--width must lie in [1, %d], got %d", render.MaxWidth, width)
			}

			registry := session.NewRegistry(session.Options{Format: format, Resolution: resolution, GridResolution: gridResolution, DefaultWidth: width})
			inst, err := registry.Create(kind)
			if err != nil {
				return err
			}
			for _, s := range sets {
				name, raw, err := splitAssignment(s)
				if err != nil {
					return err
				}
				if _, _, err := inst.Set(name, raw); err != nil {
					return err
				}
			}
			if surface {
				if _, err := inst.SetSurface(true); err != nil {
					return err
				}
			}

			data, _, frame, err := inst.Chart()
			if err != nil {
				return err
			}

			dest := out
			if dest == "" {
				store, err := session.NewLocalFrameStore(exportDir)
				if err != nil {
					return err
				}
				key, err := inst.Export(context.Background(), store)
				if err != nil {
					return err
				}
				dest = exportDir + "/" + key
			} else if err := os.WriteFile(dest, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", dest, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n%dx%d %s -> %s\n", frame.Caption, frame.Legend, frame.Width, frame.Height, frame.Hash.Short(), dest)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Parameter assignment name=value (repeatable, applied in order)")
	cmd.Flags().IntVar(&width, "width", 640, "Container width in pixels; height is 3/4 of it")
	cmd.Flags().IntVar(&resolution, "resolution", 0, "Sample count for continuous distributions (0 = default)")
	cmd.Flags().IntVar(&gridResolution, "grid-resolution", 0, "Lattice size per axis of --surface (0 = default)")
	cmd.Flags().StringVar(&formatName, "format", "png", "Output format: png|svg")
	cmd.Flags().StringVar(&out, "out", "", "Output file")
	cmd.Flags().StringVar(&exportDir, "export-dir", "exports", "Export directory used when --out is empty")
	cmd.Flags().BoolVar(&surface, "surface", false, "Render the joint surface (bivariate normal only)")
	return cmd
}

func lookup(raw string) (distribution.Model, error) {
	kind, err := core.ParseKind(raw)
	if err != nil {
		return nil, err
	}
	m, err := distribution.Lookup(kind)
	if err != nil {
		known := make([]string, 0)
		for _, m := range distribution.All() {
			known = append(known, m.Spec().Kind.String())
		}
		sort.Strings(known)
		return nil, fmt.Errorf("%w (known: %s)", err, strings.Join(known, ", "))
	}
	return m, nil
}

func splitAssignment(s string) (string, string, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", fmt.Errorf("--set expects name=value, got %q", s)
	}
	return strings.TrimSpace(name), raw, nil
}
