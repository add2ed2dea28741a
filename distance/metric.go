package distance

import (
	"fmt"
	"strings"
)

// Metric selects the distance formula used by Distance and DistanceWeighted.
type Metric int

const (
	Euclidean Metric = iota
	Cosine
	Manhattan
	RMSE
)

// Metrics returns every supported metric in declaration order.
func Metrics() []Metric {
	return []Metric{Euclidean, Cosine, Manhattan, RMSE}
}

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Cosine:
		return "cosine"
	case Manhattan:
		return "manhattan"
	case RMSE:
		return "rmse"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMetric returns the metric named s. Matching is case-insensitive.
func ParseMetric(s string) (Metric, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Metrics() {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMetric, s)
}

func (m Metric) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMetric, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Metric) valid() bool {
	return m >= Euclidean && m <= RMSE
}
