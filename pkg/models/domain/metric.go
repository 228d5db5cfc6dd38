package domain

// Metric is a numeric figure that the source data may not be able to support.
// Unavailable metrics carry a zero Value and must not be presented as measured.
type Metric struct {
	Value     float64
	Available bool
}

func Measured(v float64) Metric {
	return Metric{Value: v, Available: true}
}

func NotAvailable() Metric {
	return Metric{}
}

// Sub returns m - o; the result is available only when both sides are.
func (m Metric) Sub(o Metric) Metric {
	if !m.Available || !o.Available {
		return NotAvailable()
	}
	return Measured(m.Value - o.Value)
}
