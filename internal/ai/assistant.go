package ai

import (
	"context"
)

// Score is the outcome of a generative scoring request for one resume.
type Score struct {
	Score         float64
	CandidateName string
	Raw           string
}

// Scorer asks a generative model to rate a resume against a job description.
type Scorer interface {
	Score(ctx context.Context, resumeText, jobText string) (*Score, error)
}

// Embedder maps a piece of text to a fixed-length vector. Implementations must
// be deterministic for identical input.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
