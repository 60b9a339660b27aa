// Package relevance converts store distances into the 0-100 scores
// shown next to sources. Distances are metric-specific, so each
// collection's metric is registered explicitly at startup; the legacy
// distance-magnitude guess survives only as the fallback for
// collections nobody registered.
package relevance

// Metric identifies the distance function a collection was indexed with.
type Metric string

const (
	Cosine Metric = "cosine"
	L2     Metric = "l2"
)

// IsValid reports whether the metric is known.
func (m Metric) IsValid() bool { return m == Cosine || m == L2 }

// Normalizer maps distances to percentage relevance per collection.
type Normalizer struct {
	metrics map[string]Metric
}

// NewNormalizer creates a normalizer from a collection→metric registry.
func NewNormalizer(metrics map[string]Metric) *Normalizer {
	reg := make(map[string]Metric, len(metrics))
	for name, m := range metrics {
		if m.IsValid() {
			reg[name] = m
		}
	}
	return &Normalizer{metrics: reg}
}

// Score converts a non-negative distance to a relevance in [0,100].
func (n *Normalizer) Score(collection string, distance float64) float64 {
	metric, ok := n.metrics[collection]
	if !ok {
		// Unregistered collection: guess the metric from the distance
		// magnitude (cosine distance never exceeds 2).
		if distance <= 2 {
			metric = Cosine
		} else {
			metric = L2
		}
	}

	var score float64
	switch metric {
	case Cosine:
		score = (2 - distance) / 2 * 100
	case L2:
		score = 100 - distance*10
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
