package ai

import "math"

// CosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched lengths and zero-magnitude vectors yield 0 instead of an error,
// so empty-text embeddings are safe to compare.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
