package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/mawngo/distancers/distance"
	"github.com/mawngo/distancers/internal/kmeans"
	"github.com/spf13/cobra"
)

const (
	engineBuiltin = "builtin"
	engineMuesli  = "muesli"
)

type clusterFlags struct {
	K           int
	Metric      distance.Metric
	Weights     string
	Round       int
	Delta       float64
	Concurrency int
	Engine      string
	Seed        int64
	Header      bool
}

func newClusterCommand() *cobra.Command {
	defaultConcurrency := max(1, runtime.NumCPU())

	f := clusterFlags{
		K:           3,
		Metric:      distance.Euclidean,
		Round:       100,
		Delta:       0.005,
		Concurrency: defaultConcurrency,
		Engine:      engineBuiltin,
	}

	command := cobra.Command{
		Use:   "cluster FILE",
		Short: "Partition the rows of a CSV file into k clusters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if f.Concurrency < 1 {
				f.Concurrency = defaultConcurrency
			}

			data, err := readDataset(args[0], f.Header)
			if err != nil {
				return err
			}

			options := []kmeans.TrainerOption{
				kmeans.WithMetric(f.Metric),
				kmeans.WithMaxIterations(f.Round),
				kmeans.WithDeltaThreshold(f.Delta),
				kmeans.WithConcurrency(f.Concurrency),
			}
			if cmd.Flags().Changed("seed") {
				options = append(options, kmeans.WithSeed(f.Seed))
			}
			if cmd.Flags().Changed("weights") {
				w, err := parseVector(f.Weights)
				if err != nil {
					return fmt.Errorf("parse weights: %w", err)
				}
				options = append(options, kmeans.WithWeights(w))
			}

			trainer, err := kmeans.NewTrainer(f.K, options...)
			if err != nil {
				return err
			}

			slog.Debug("Start partitioning",
				slog.Int("k", f.K),
				slog.String("metric", f.Metric.String()),
				slog.String("engine", f.Engine),
				slog.Int("rows", len(data)),
				slog.Duration("elapsed", time.Since(now)),
			)

			var m *kmeans.Model
			switch f.Engine {
			case engineBuiltin:
				m, err = trainer.Fit(data)
			case engineMuesli:
				m, err = trainer.Partition(data)
			default:
				return fmt.Errorf("unknown engine %q [%s,%s]", f.Engine, engineBuiltin, engineMuesli)
			}
			if err != nil {
				return err
			}

			if err := writeModel(cmd.OutOrStdout(), m); err != nil {
				return err
			}
			slog.Info("Clustering completed",
				slog.String("file", args[0]),
				slog.Int("iter", m.Iter()),
				slog.Float64("inertia", m.Inertia()),
				slog.Duration("took", time.Since(now)))
			return nil
		},
	}

	command.Flags().IntVarP(&f.K, "clusters", "k", f.K, "Number of clusters")
	command.Flags().VarP(metricValue{&f.Metric}, "metric", "m", "Distance metric ["+metricNames()+"]")
	command.Flags().StringVarP(&f.Weights, "weights", "w", f.Weights, "Comma separated per-dimension weights")
	command.Flags().IntVarP(&f.Round, "round", "i", f.Round, "Maximum number of kmeans iterations")
	command.Flags().Float64VarP(&f.Delta, "delta", "d", f.Delta, "Fraction of reassigned rows under which training stops")
	command.Flags().IntVar(&f.Concurrency, "kcpu", f.Concurrency, "Maximum cpu used for training [0=auto]")
	command.Flags().StringVar(&f.Engine, "engine", f.Engine, "Kmeans implementation ["+engineBuiltin+","+engineMuesli+"]")
	command.Flags().Int64Var(&f.Seed, "seed", f.Seed, "Seed for centroid initialization (builtin engine only)")
	command.Flags().BoolVar(&f.Header, "header", f.Header, "Skip the first row of the file")
	command.Flags().SortFlags = false
	return &command
}

func readDataset(path string, header bool) (kmeans.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	r.Comment = '#'

	var data kmeans.Dataset
	for row := 1; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if header && row == 1 {
			continue
		}
		v, err := parseVector(strings.Join(record, ","))
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, row, err)
		}
		data = append(data, v)
	}
	slog.Debug("Dataset loaded", slog.String("path", path), slog.Int("rows", len(data)))
	return data, nil
}

func writeModel(w io.Writer, m *kmeans.Model) error {
	for i, c := range m.Guesses() {
		if _, err := fmt.Fprintf(w, "%d,%d\n", i, c); err != nil {
			return err
		}
	}
	for i, c := range m.Centroids() {
		if _, err := fmt.Fprintf(w, "centroid %s: %s\n", strconv.Itoa(i), formatVector(c)); err != nil {
			return err
		}
	}
	return nil
}
