package matching

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"sort"
)

// Document is one resume ready for matching: the original filename plus the
// extracted plain text.
type Document struct {
	Filename string
	Text     string
}

// Result is one qualified candidate with its final presentation score.
type Result struct {
	Filename      string  `json:"filename"`
	CandidateName string  `json:"candidateName"`
	Score         float64 `json:"score"`
}

// Results holds the qualified candidates produced by one matching run.
type Results struct {
	Items []*Result
}

func (r *Results) Len() int {
	return len(r.Items)
}

// Sort orders the items by score, best first.
func (r *Results) Sort() {
	sort.SliceStable(r.Items, func(i, j int) bool {
		return r.Items[i].Score > r.Items[j].Score
	})
}

// Filenames lists the source files of the qualified candidates, in the
// current item order.
func (r *Results) Filenames() []string {
	names := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		names = append(names, item.Filename)
	}
	return names
}

func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "resume-ranker-results-*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Round converts an internal score to its two-decimal presentation form.
// Qualification decisions are always made on the unrounded value.
func Round(score float64) float64 {
	return math.Round(score*100) / 100
}

// Matcher scores a batch of resume documents against one job description.
type Matcher interface {
	Match(ctx context.Context, jobText string, docs []Document) (*Results, error)
}
