package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mawngo/distancers/distance"
	"github.com/spf13/pflag"
)

// parseVector parses a comma separated list of numbers, e.g. "1,2.5,-3".
// An empty string is the empty vector.
func parseVector(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{}, nil
	}
	parts := strings.Split(s, ",")
	v := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value at position %d: %w", i, err)
		}
		v[i] = f
	}
	return v, nil
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// metricValue adapts distance.Metric to a pflag.Value.
type metricValue struct {
	m *distance.Metric
}

var _ pflag.Value = metricValue{}

func (v metricValue) String() string {
	if v.m == nil {
		return ""
	}
	return v.m.String()
}

func (v metricValue) Set(s string) error {
	return v.m.UnmarshalText([]byte(s))
}

func (v metricValue) Type() string {
	return "metric"
}

func metricNames() string {
	names := make([]string, 0, len(distance.Metrics()))
	for _, m := range distance.Metrics() {
		names = append(names, m.String())
	}
	return strings.Join(names, ",")
}
