package matching

import (
	"context"
	"fmt"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/extract"
)

// relevanceThreshold is the minimum cosine similarity between a job title and
// the required field for the entry to count as relevant experience.
const relevanceThreshold = 0.5

// EmbeddingReasoner selects relevant experience entries by comparing each job
// title against the required field in embedding space.
type EmbeddingReasoner struct {
	embedder ai.Embedder
}

func NewEmbeddingReasoner(embedder ai.Embedder) *EmbeddingReasoner {
	return &EmbeddingReasoner{embedder: embedder}
}

// Relevant keeps the entries whose job title is semantically close to the
// required field. Without a field there is nothing to compare against, so no
// entry qualifies.
func (r *EmbeddingReasoner) Relevant(ctx context.Context, entries []extract.ExperienceEntry, field string) ([]extract.ExperienceEntry, error) {
	if field == "" || len(entries) == 0 {
		return nil, nil
	}

	fieldVec, err := r.embedder.Embed(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("embedding required field: %w", err)
	}

	var relevant []extract.ExperienceEntry
	for _, entry := range entries {
		titleVec, err := r.embedder.Embed(ctx, entry.JobTitle)
		if err != nil {
			return nil, fmt.Errorf("embedding job title %q: %w", entry.JobTitle, err)
		}

		if ai.CosineSimilarity(titleVec, fieldVec) > relevanceThreshold {
			relevant = append(relevant, entry)
		}
	}

	return relevant, nil
}
