package matching

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
)

// LLMMatcher ranks resumes by asking a language model for a fit score and the
// candidate name in one shot per document.
type LLMMatcher struct {
	scorer   ai.Scorer
	minScore float64
	logger   *zap.Logger
}

func NewLLMMatcher(scorer ai.Scorer, minScore float64, logger *zap.Logger) *LLMMatcher {
	return &LLMMatcher{
		scorer:   scorer,
		minScore: minScore,
		logger:   logger,
	}
}

// Match scores every document against the job text. A document the model
// cannot score is logged and skipped so one bad response does not sink the
// batch.
func (m *LLMMatcher) Match(ctx context.Context, jobText string, docs []Document) (*Results, error) {
	results := &Results{}
	for _, doc := range docs {
		score, err := m.scorer.Score(ctx, doc.Text, jobText)
		if err != nil {
			m.logger.Warn("skipping resume", zap.String("filename", doc.Filename), zap.Error(err))
			continue
		}

		m.logger.Debug("scored resume",
			zap.String("filename", doc.Filename),
			zap.String("candidate", score.CandidateName),
			zap.Float64("score", score.Score),
		)

		if score.Score < m.minScore {
			continue
		}

		results.Items = append(results.Items, &Result{
			Filename:      doc.Filename,
			CandidateName: score.CandidateName,
			Score:         Round(score.Score),
		})
	}

	results.Sort()

	return results, nil
}
