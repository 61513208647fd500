package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/utils"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Scorer delegates the whole match decision to the generative model: one
// prompt with the raw resume and job text, one JSON score back.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewScorer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scorer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (s *Scorer) Score(ctx context.Context, resumeText, jobText string) (*ai.Score, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("resume text is required")
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, fmt.Errorf("job text is required")
	}

	prompt := buildPrompt(resumeText, jobText)

	s.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	score, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	score.Raw = raw
	return score, nil
}

func buildPrompt(resumeText, jobText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job Description:\n{{JOB_TEXT}}\n\nResume:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{JOB_TEXT}}", jobText)
	prompt = strings.ReplaceAll(prompt, "{{RESUME_TEXT}}", resumeText)
	return prompt
}

// scorePayload mirrors the JSON object the model is instructed to return. The
// score is frequently stringified, hence the weakly typed decode below.
type scorePayload struct {
	Score         float64 `mapstructure:"score"`
	CandidateName string  `mapstructure:"Candidate Name"`
}

func parseResponse(raw string) (*ai.Score, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if _, ok := data["score"]; !ok {
		return nil, fmt.Errorf("gemini response has no score field")
	}

	var payload scorePayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &payload,
	})
	if err != nil {
		return nil, fmt.Errorf("build response decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	return &ai.Score{
		Score:         payload.Score,
		CandidateName: strings.TrimSpace(payload.CandidateName),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
