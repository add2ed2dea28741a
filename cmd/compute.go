package cmd

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/mawngo/distancers/distance"
	"github.com/spf13/cobra"
)

type computeFlags struct {
	Metric  distance.Metric
	Weights string
	All     bool
}

func newComputeCommand() *cobra.Command {
	f := computeFlags{
		Metric: distance.Euclidean,
	}

	command := cobra.Command{
		Use:   "compute A B",
		Short: "Compute the distance between two comma separated vectors",
		Example: `  distancers compute 1,2,3,4 3,1,4,2
  distancers compute -m cosine -w 0.2,0.4,0.6,0.8 1,2,3,4 3,1,4,2
  distancers compute --all 1,2,3,4 3,1,4,2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseVector(args[0])
			if err != nil {
				return fmt.Errorf("parse A: %w", err)
			}
			b, err := parseVector(args[1])
			if err != nil {
				return fmt.Errorf("parse B: %w", err)
			}

			var w []float64
			if cmd.Flags().Changed("weights") {
				w, err = parseVector(f.Weights)
				if err != nil {
					return fmt.Errorf("parse weights: %w", err)
				}
			}

			metrics := []distance.Metric{f.Metric}
			if f.All {
				metrics = distance.Metrics()
			}

			slog.Debug("Computing",
				slog.Int("dimension", len(a)),
				slog.Bool("weighted", w != nil),
				slog.Any("metrics", metrics))

			out := cmd.OutOrStdout()
			for _, m := range metrics {
				var d float64
				if w != nil {
					d = distance.DistanceWeighted(a, b, w, m)
				} else {
					d = distance.Distance(a, b, m)
				}
				if math.IsNaN(d) {
					slog.Warn("Result is NaN",
						slog.String("metric", m.String()),
						slog.Int("a", len(a)),
						slog.Int("b", len(b)),
						slog.Int("weights", len(w)))
				}
				if f.All {
					_, err = fmt.Fprintf(out, "%s\t%s\n", m, strconv.FormatFloat(d, 'g', -1, 64))
				} else {
					_, err = fmt.Fprintln(out, strconv.FormatFloat(d, 'g', -1, 64))
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	command.Flags().VarP(metricValue{&f.Metric}, "metric", "m", "Distance metric ["+metricNames()+"]")
	command.Flags().StringVarP(&f.Weights, "weights", "w", f.Weights, "Comma separated per-dimension weights")
	command.Flags().BoolVar(&f.All, "all", f.All, "Print every metric")
	command.Flags().SortFlags = false
	return &command
}
