package kmeans

import (
	"fmt"

	"github.com/mawngo/distancers/distance"
	"github.com/muesli/clusters"
	mkmeans "github.com/muesli/kmeans"
)

// Point is a clusters.Observation compared with cluster centers through a
// distance.Func instead of the squared euclidean distance of clusters.Coordinates.
type Point struct {
	Index  int
	coords clusters.Coordinates
	fn     distance.Func
}

func (p Point) Coordinates() clusters.Coordinates {
	return p.coords
}

func (p Point) Distance(c clusters.Coordinates) float64 {
	return p.fn(p.coords, c)
}

// Observations wraps every row of data as a Point using fn.
func Observations(data Dataset, fn distance.Func) clusters.Observations {
	obs := make(clusters.Observations, len(data))
	for i := range data {
		obs[i] = Point{Index: i, coords: data[i], fn: fn}
	}
	return obs
}

// Partition trains a model with github.com/muesli/kmeans, keeping the
// trainer's distance function. The seed and concurrency options are ignored.
func (t Trainer) Partition(data Dataset) (*Model, error) {
	if _, err := t.validate(data); err != nil {
		return nil, err
	}

	km, err := mkmeans.NewWithOptions(t.delta, nil)
	if err != nil {
		return nil, fmt.Errorf("create partitioner: %w", err)
	}
	cc, err := km.Partition(Observations(data, t.distanceFn), t.k)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}

	model := Model{
		distanceFn: t.distanceFn,
		k:          len(cc),
		data:       data,
		centroids:  make(Dataset, len(cc)),
		mapping:    make([]int, len(data)),
	}
	for ci, c := range cc {
		model.centroids[ci] = []float64(c.Center)
		for _, o := range c.Observations {
			model.mapping[o.(Point).Index] = ci
		}
	}
	return &model, nil
}

// Partition is a shortcut for partitioning data into k clusters using metric m.
func Partition(data Dataset, k int, m distance.Metric) (*Model, error) {
	t, err := NewTrainer(k, WithMetric(m))
	if err != nil {
		return nil, err
	}
	return t.Partition(data)
}
