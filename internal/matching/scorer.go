package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/extract"
)

// Weights of the composite score. Skill overlap dominates, relevant
// experience comes next and the full-text comparison settles the rest.
const (
	skillsWeight     = 0.5
	experienceWeight = 0.3
	overallWeight    = 0.2
)

// compositeScore blends three embedding similarities between a parsed resume
// and a parsed job into one number in the cosine range.
func compositeScore(ctx context.Context, embedder ai.Embedder, resume *extract.Resume, job *extract.Job) (float64, error) {
	pairs := []struct {
		name   string
		weight float64
		left   string
		right  string
	}{
		{"skills", skillsWeight, strings.Join(resume.Skills, " "), strings.Join(job.RequiredSkills, " ")},
		{"experience", experienceWeight, experienceText(resume.RelevantExperience), requirementText(job.Requirement)},
		{"overall", overallWeight, resume.ResumeText, job.Description},
	}

	var score float64
	for _, pair := range pairs {
		left, err := embedder.Embed(ctx, pair.left)
		if err != nil {
			return 0, fmt.Errorf("embedding resume %s: %w", pair.name, err)
		}

		right, err := embedder.Embed(ctx, pair.right)
		if err != nil {
			return 0, fmt.Errorf("embedding job %s: %w", pair.name, err)
		}

		score += pair.weight * ai.CosineSimilarity(left, right)
	}

	return score, nil
}

func experienceText(entries []extract.ExperienceEntry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, fmt.Sprintf("%s at %s for %s months", entry.JobTitle, entry.Company, entry.Duration))
	}
	return strings.Join(parts, " ")
}

func requirementText(req *extract.ExperienceRequirement) string {
	if req == nil {
		return ""
	}

	parts := []string{req.Duration()}
	if req.Field != "" {
		parts = append(parts, req.Field)
	}
	return strings.Join(parts, " ")
}
