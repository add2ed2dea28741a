package kmeans

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"github.com/mawngo/distancers/distance"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidK          = errors.New("k must be positive")
	ErrEmptyDataset      = errors.New("dataset is empty")
	ErrTooFewObservation = errors.New("dataset must have at least k observations")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

type Dataset [][]float64

type Trainer struct {
	k             int
	maxIterations int
	metric        distance.Metric
	weights       []float64
	distanceFn    distance.Func
	delta         float64
	concurrency   int
	seed          int64
}

type TrainerOption func(*Trainer)

type Model struct {
	distanceFn distance.Func
	k          int
	data       Dataset
	centroids  Dataset
	mapping    []int
	iter       int
}

// NewTrainer create new Trainer.
// The distance function is resolved from the configured metric (and weights)
// unless WithDistanceFunc is given.
func NewTrainer(k int, options ...TrainerOption) (Trainer, error) {
	t := Trainer{
		k:             k,
		maxIterations: 100,
		metric:        distance.Euclidean,
		delta:         0.01,
		concurrency:   runtime.NumCPU(),
		seed:          time.Now().UnixNano(),
	}
	for i := range options {
		options[i](&t)
	}
	if t.k < 1 {
		return t, ErrInvalidK
	}
	if t.concurrency < 1 {
		t.concurrency = 1
	}
	if t.distanceFn != nil {
		return t, nil
	}

	if t.weights == nil {
		fn, err := distance.Provider(t.metric)
		if err != nil {
			return t, fmt.Errorf("resolve distance: %w", err)
		}
		t.distanceFn = fn
		return t, nil
	}

	fn, err := distance.WeightedProvider(t.metric)
	if err != nil {
		return t, fmt.Errorf("resolve weighted distance: %w", err)
	}
	weights := t.weights
	t.distanceFn = func(a, b []float64) float64 {
		return fn(a, b, weights)
	}
	return t, nil
}

// WithMetric selects the metric used to compare observations with centroids.
func WithMetric(m distance.Metric) TrainerOption {
	return func(t *Trainer) {
		t.metric = m
	}
}

// WithWeights switches the trainer to the weighted variant of its metric.
func WithWeights(w []float64) TrainerOption {
	return func(t *Trainer) {
		t.weights = slices.Clone(w)
	}
}

// WithDistanceFunc overrides metric resolution with a custom function.
func WithDistanceFunc(fn distance.Func) TrainerOption {
	return func(t *Trainer) {
		t.distanceFn = fn
	}
}

func WithMaxIterations(i int) TrainerOption {
	return func(t *Trainer) {
		t.maxIterations = i
	}
}

func WithDeltaThreshold(delta float64) TrainerOption {
	return func(t *Trainer) {
		t.delta = delta
	}
}

func WithConcurrency(c int) TrainerOption {
	return func(t *Trainer) {
		t.concurrency = c
	}
}

func WithSeed(seed int64) TrainerOption {
	return func(t *Trainer) {
		t.seed = seed
	}
}

// Metric returns the configured metric.
func (t Trainer) Metric() distance.Metric {
	return t.metric
}

func (t Trainer) validate(data Dataset) (int, error) {
	if len(data) == 0 {
		return 0, ErrEmptyDataset
	}
	if t.k > len(data) {
		return 0, fmt.Errorf("%w: k=%d, observations=%d", ErrTooFewObservation, t.k, len(data))
	}
	l := len(data[0])
	for i := range data {
		if len(data[i]) != l {
			return 0, fmt.Errorf("%w: row %d has %d values, expected %d", ErrDimensionMismatch, i, len(data[i]), l)
		}
	}
	if t.weights != nil && len(t.weights) != l {
		return 0, fmt.Errorf("%w: %d weights for %d dimensions", ErrDimensionMismatch, len(t.weights), l)
	}
	return l, nil
}

// Fit create and train the *Model.
func (t Trainer) Fit(data Dataset) (*Model, error) {
	l, err := t.validate(data)
	if err != nil {
		return nil, err
	}

	model := Model{data: data, k: t.k, distanceFn: t.distanceFn}
	model.initializeMean(rand.New(rand.NewSource(t.seed)))
	changeThreshold := int64(float64(len(data)) * t.delta)

	cb, cn := prepare(t.k, l)
	iter := 0
	for iter < t.maxIterations {
		iter++
		var changes atomic.Int64
		icb := make([][]int, t.concurrency)
		icn := make([]Dataset, t.concurrency)
		ch := make(chan int, t.concurrency)
		for num := range t.concurrency {
			go func() {
				defer func() {
					ch <- num
				}()
				cb, cn := prepare(t.k, l)
				for i := num; i < len(data); i += t.concurrency {
					n := model.nearest(data[i])
					if model.mapping[i] != n {
						changes.Add(1)
					}

					model.mapping[i] = n
					cb[n]++
					floats.Add(cn[n], data[i])
				}
				icb[num] = cb
				icn[num] = cn
			}()
		}

		for range t.concurrency {
			num := <-ch
			for n := range t.k {
				cb[n] += icb[num][n]
				floats.Add(cn[n], icn[num][n])
			}
		}

		for i := 0; i < t.k; i++ {
			// An empty cluster keeps its previous centroid.
			if cb[i] > 0 {
				floats.Scale(1/float64(cb[i]), cn[i])
				copy(model.centroids[i], cn[i])
			}
			cb[i] = 0
			for j := range cn[i] {
				cn[i][j] = 0
			}
		}

		if c := changes.Load(); c == 0 || c < changeThreshold {
			break
		}
	}

	model.iter = iter
	return &model, nil
}

func prepare(k int, l int) ([]int, Dataset) {
	cb := make([]int, k)
	cn := make(Dataset, k)
	for i := 0; i < k; i++ {
		cn[i] = make([]float64, l)
	}
	return cb, cn
}

// initializeMean seeds centroids with k-means++.
// Centroids are copies, so training never writes into the dataset.
func (m *Model) initializeMean(rng *rand.Rand) {
	m.mapping = make([]int, len(m.data))
	for i := range m.mapping {
		m.mapping[i] = -1
	}
	m.centroids = make(Dataset, m.k)
	m.centroids[0] = slices.Clone(m.data[rng.Intn(len(m.data))])

	d := make([]float64, len(m.data))
	for i := 1; i < m.k; i++ {
		s := float64(0)
		for j := 0; j < len(m.data); j++ {
			l := m.distanceFn(m.centroids[0], m.data[j])
			for g := 1; g < i; g++ {
				if f := m.distanceFn(m.centroids[g], m.data[j]); f < l {
					l = f
				}
			}
			if math.IsNaN(l) {
				l = 0
			}

			d[j] = l * l
			s += d[j]
		}

		t := rng.Float64() * s
		k := 0
		for s = d[0]; s < t && k < len(d)-1; s += d[k] {
			k++
		}

		m.centroids[i] = slices.Clone(m.data[k])
	}
}

func (m *Model) nearest(p []float64) int {
	l := 0
	n := m.distanceFn(p, m.centroids[0])
	for i := 1; i < m.k; i++ {
		if d := m.distanceFn(p, m.centroids[i]); d < n || math.IsNaN(n) {
			n = d
			l = i
		}
	}
	return l
}

// Predict returns number of cluster to which the observation would be assigned.
func (m *Model) Predict(p []float64) int {
	return m.nearest(p)
}

// Guesses returns mapping from data point indices to cluster numbers.
func (m *Model) Guesses() []int {
	return m.mapping
}

// Cluster returns cluster at position i.
func (m *Model) Cluster(i int) []float64 {
	return m.centroids[i]
}

// Centroids returns all cluster centers.
func (m *Model) Centroids() Dataset {
	return m.centroids
}

// Iter returns model number of iterations.
func (m *Model) Iter() int {
	return m.iter
}

// Inertia returns the sum of distances between each observation and the
// centroid it is assigned to. NaN distances are skipped.
func (m *Model) Inertia() float64 {
	var s float64
	for i, n := range m.mapping {
		if d := m.distanceFn(m.data[i], m.centroids[n]); !math.IsNaN(d) {
			s += d
		}
	}
	return s
}
