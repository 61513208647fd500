package matching

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/extract"
)

// SimilarityMatcher ranks resumes by parsing both sides into structured
// records and blending embedding similarities between them.
type SimilarityMatcher struct {
	dict     *extract.Dictionary
	embedder ai.Embedder
	jobTitle string
	minScore float64
	logger   *zap.Logger
}

func NewSimilarityMatcher(dict *extract.Dictionary, embedder ai.Embedder, jobTitle string, minScore float64, logger *zap.Logger) *SimilarityMatcher {
	return &SimilarityMatcher{
		dict:     dict,
		embedder: embedder,
		jobTitle: jobTitle,
		minScore: minScore,
		logger:   logger,
	}
}

// Match parses the job once, then scores every document against it. A job
// description without a recognizable experience requirement fails the whole
// run; a document that cannot be scored is logged and skipped.
func (m *SimilarityMatcher) Match(ctx context.Context, jobText string, docs []Document) (*Results, error) {
	job, err := extract.NewJobParser(m.dict, m.jobTitle).Parse(jobText)
	if err != nil {
		return nil, fmt.Errorf("parsing job description: %w", err)
	}

	parser := extract.NewResumeParser(m.dict)
	reasoner := NewEmbeddingReasoner(m.embedder)

	results := &Results{}
	for _, doc := range docs {
		resume, err := parser.Parse(ctx, doc.Text, job.Requirement, reasoner)
		if err != nil {
			m.logger.Warn("skipping resume", zap.String("filename", doc.Filename), zap.Error(err))
			continue
		}

		score, err := compositeScore(ctx, m.embedder, resume, job)
		if err != nil {
			m.logger.Warn("skipping resume", zap.String("filename", doc.Filename), zap.Error(err))
			continue
		}

		m.logger.Debug("scored resume",
			zap.String("filename", doc.Filename),
			zap.String("candidate", resume.Name),
			zap.Float64("score", score),
		)

		if score < m.minScore {
			continue
		}

		results.Items = append(results.Items, &Result{
			Filename:      doc.Filename,
			CandidateName: resume.Name,
			Score:         Round(score),
		})
	}

	results.Sort()

	return results, nil
}
