package argument

// Complexity grades how intricate an extracted argument graph is. The score
// blends graph size, density, connectivity and type diversity into [0, 1].
type Complexity struct {
	Level              string  `json:"level"`
	Score              float64 `json:"score"`
	NodeCount          int     `json:"node_count"`
	EdgeCount          int     `json:"edge_count"`
	Density            float64 `json:"density"`
	AverageConnections float64 `json:"average_connections"`
	TypeDiversity      int     `json:"type_diversity"`
}

const (
	ComplexityEmpty         = "empty"
	ComplexitySimple        = "simple"
	ComplexityModerate      = "moderate"
	ComplexityComplex       = "complex"
	ComplexityHighlyComplex = "highly_complex"
)

// AnalyzeComplexity computes complexity metrics for a graph. Weights favor
// size over density over connectivity over diversity.
func AnalyzeComplexity(g *Graph) Complexity {
	stats := g.Stats()

	if stats.TotalNodes == 0 {
		return Complexity{Level: ComplexityEmpty}
	}

	nodes := float64(stats.TotalNodes)
	edges := float64(stats.TotalEdges)

	maxPairs := nodes * (nodes - 1) / 2
	if maxPairs < 1 {
		maxPairs = 1
	}
	density := edges / maxPairs
	avgConnections := edges / nodes
	diversity := len(stats.NodesByType)

	score := clamp01(nodes/50)*0.4 +
		clamp01(density*10)*0.3 +
		clamp01(avgConnections/5)*0.2 +
		clamp01(float64(diversity)/8)*0.1

	level := ComplexitySimple
	switch {
	case score >= 0.8:
		level = ComplexityHighlyComplex
	case score >= 0.6:
		level = ComplexityComplex
	case score >= 0.3:
		level = ComplexityModerate
	}

	return Complexity{
		Level:              level,
		Score:              score,
		NodeCount:          stats.TotalNodes,
		EdgeCount:          stats.TotalEdges,
		Density:            density,
		AverageConnections: avgConnections,
		TypeDiversity:      diversity,
	}
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
