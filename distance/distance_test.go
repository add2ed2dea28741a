package distance

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	vecA    = []float64{1, 2, 3, 4}
	vecB    = []float64{3, 1, 4, 2}
	short   = []float64{3, 1, 4}
	weights = []float64{0.2, 0.4, 0.6, 0.8}
)

func TestKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		fn       func() float64
		expected float64
	}{
		{"Euclidean", func() float64 { return EuclideanDistance(vecA, vecB) }, 3.1622776601683795},
		{"Cosine", func() float64 { return CosineDistance(vecA, vecB) }, 0.16666666666666663},
		{"Manhattan", func() float64 { return ManhattanDistance(vecA, vecB) }, 6.0},
		{"RMSE", func() float64 { return RMSEDistance(vecA, vecB) }, 1.5811388300841898},
		{"EuclideanWeighted", func() float64 { return EuclideanDistanceWeighted(vecA, vecB, weights) }, 2.23606797749979},
		{"CosineWeighted", func() float64 { return CosineDistanceWeighted(vecA, vecB, weights) }, 0.1339745962155614},
		{"ManhattanWeighted", func() float64 { return ManhattanDistanceWeighted(vecA, vecB, weights) }, 0.4 + 0.4 + 0.6 + 1.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.fn(), 1e-12)
		})
	}
}

func TestLengthMismatch(t *testing.T) {
	t.Run("Unweighted", func(t *testing.T) {
		for _, fn := range []Func{EuclideanDistance, CosineDistance, ManhattanDistance, RMSEDistance} {
			assert.True(t, math.IsNaN(fn(vecA, short)))
			assert.True(t, math.IsNaN(fn(short, vecA)))
		}
		for _, m := range Metrics() {
			got := Distance(vecA, short, m)
			assert.True(t, math.IsNaN(got), "metric %v returned %v", m, got)
		}
	})

	t.Run("Weighted", func(t *testing.T) {
		for _, fn := range []WeightedFunc{EuclideanDistanceWeighted, CosineDistanceWeighted, ManhattanDistanceWeighted} {
			assert.True(t, math.IsNaN(fn(vecA, short, weights)))
			assert.True(t, math.IsNaN(fn(vecA, vecB, weights[:3])))
			assert.True(t, math.IsNaN(fn(short, short, weights)))
		}
		for _, m := range Metrics() {
			assert.True(t, math.IsNaN(DistanceWeighted(vecA, short, weights, m)))
		}
	})
}

func TestEmpty(t *testing.T) {
	assert.Equal(t, 0.0, EuclideanDistance(nil, []float64{}))
	assert.Equal(t, 0.0, ManhattanDistance([]float64{}, []float64{}))
	assert.Equal(t, 0.0, EuclideanDistanceWeighted(nil, nil, nil))
	assert.Equal(t, 0.0, ManhattanDistanceWeighted(nil, nil, nil))
	assert.True(t, math.IsNaN(CosineDistance(nil, nil)))
	assert.True(t, math.IsNaN(CosineDistanceWeighted(nil, nil, nil)))
	assert.True(t, math.IsNaN(RMSEDistance(nil, nil)))
}

func TestCosineZeroNorm(t *testing.T) {
	zero := []float64{0, 0, 0, 0}
	assert.True(t, math.IsNaN(CosineDistance(vecA, zero)))
	assert.True(t, math.IsNaN(CosineDistance(zero, vecA)))
	assert.True(t, math.IsNaN(CosineDistanceWeighted(vecA, vecB, []float64{0, 0, 0, 0})))
}

func TestCosineRange(t *testing.T) {
	assert.InDelta(t, 0.0, CosineDistance(vecA, []float64{2, 4, 6, 8}), 1e-12)
	assert.InDelta(t, 1.0, CosineDistance([]float64{1, 0}, []float64{0, 1}), 1e-12)
	assert.InDelta(t, 2.0, CosineDistance(vecA, []float64{-1, -2, -3, -4}), 1e-12)
}

func TestProperties(t *testing.T) {
	pairs := [][2][]float64{
		{vecA, vecB},
		{{-1.5, 0, 7}, {2, 2, 2}},
		{{1e-9}, {-1e9}},
		{{0.1, 0.2, 0.3, 0.4, 0.5}, {0.5, 0.4, 0.3, 0.2, 0.1}},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]

		assert.Equal(t, EuclideanDistance(a, b), EuclideanDistance(b, a))
		assert.GreaterOrEqual(t, EuclideanDistance(a, b), 0.0)
		assert.Equal(t, ManhattanDistance(a, b), ManhattanDistance(b, a))
		assert.GreaterOrEqual(t, ManhattanDistance(a, b), 0.0)

		assert.Equal(t, 0.0, EuclideanDistance(a, a))
		assert.Equal(t, 0.0, ManhattanDistance(a, a))
		assert.Equal(t, 0.0, RMSEDistance(a, a))

		assert.Equal(t, EuclideanDistance(a, b), Distance(a, b, Euclidean))
		assert.Equal(t, CosineDistance(a, b), Distance(a, b, Cosine))
		assert.Equal(t, ManhattanDistance(a, b), Distance(a, b, Manhattan))
		assert.Equal(t, RMSEDistance(a, b), Distance(a, b, RMSE))

		w := make([]float64, len(a))
		for i := range w {
			w[i] = float64(i) + 0.5
		}
		assert.Equal(t, EuclideanDistanceWeighted(a, b, w), DistanceWeighted(a, b, w, Euclidean))
		assert.Equal(t, CosineDistanceWeighted(a, b, w), DistanceWeighted(a, b, w, Cosine))
		assert.Equal(t, ManhattanDistanceWeighted(a, b, w), DistanceWeighted(a, b, w, Manhattan))
		assert.True(t, math.IsNaN(DistanceWeighted(a, b, w, RMSE)))
	}
}

func TestUnitWeightsMatchUnweighted(t *testing.T) {
	ones := []float64{1, 1, 1, 1}
	assert.Equal(t, EuclideanDistance(vecA, vecB), EuclideanDistanceWeighted(vecA, vecB, ones))
	assert.Equal(t, CosineDistance(vecA, vecB), CosineDistanceWeighted(vecA, vecB, ones))
	assert.Equal(t, ManhattanDistance(vecA, vecB), ManhattanDistanceWeighted(vecA, vecB, ones))
}

func TestDoesNotMutateInputs(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{3, 1, 4, 2}
	w := []float64{0.2, 0.4, 0.6, 0.8}
	for _, m := range Metrics() {
		Distance(a, b, m)
		DistanceWeighted(a, b, w, m)
	}
	assert.Equal(t, vecA, a)
	assert.Equal(t, vecB, b)
	assert.Equal(t, weights, w)
}

func TestUnknownMetric(t *testing.T) {
	assert.True(t, math.IsNaN(Distance(vecA, vecB, Metric(99))))
	assert.True(t, math.IsNaN(DistanceWeighted(vecA, vecB, weights, Metric(-1))))
}

func TestDispatchCoversEveryMetric(t *testing.T) {
	for _, m := range Metrics() {
		f, err := Provider(m)
		require.NoError(t, err, m.String())
		assert.Equal(t, f(vecA, vecB), Distance(vecA, vecB, m))
		assert.False(t, math.IsNaN(Distance(vecA, vecB, m)), m.String())
	}
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]float64, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = DistanceWeighted(vecA, vecB, weights, Metrics()[i%3])
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		assert.Equal(t, DistanceWeighted(vecA, vecB, weights, Metrics()[i%3]), r)
	}
}
