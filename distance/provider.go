package distance

import (
	"errors"
	"fmt"
)

// ErrUnsupportedMetric is returned when a metric has no matching formula.
var ErrUnsupportedMetric = errors.New("unsupported metric")

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case Euclidean:
		return EuclideanDistance, nil
	case Cosine:
		return CosineDistance, nil
	case Manhattan:
		return ManhattanDistance, nil
	case RMSE:
		return RMSEDistance, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedMetric, m)
}

// WeightedProvider returns the weighted distance function for the given metric.
// RMSE has no weighted form.
func WeightedProvider(m Metric) (WeightedFunc, error) {
	switch m {
	case Euclidean:
		return EuclideanDistanceWeighted, nil
	case Cosine:
		return CosineDistanceWeighted, nil
	case Manhattan:
		return ManhattanDistanceWeighted, nil
	case RMSE:
		return nil, fmt.Errorf("%w: weighted %v", ErrUnsupportedMetric, m)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedMetric, m)
}
