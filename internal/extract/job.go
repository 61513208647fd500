package extract

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNoExperienceRequirement signals that a job posting states no recognizable
// experience requirement. It marks an input problem, not a system failure.
var ErrNoExperienceRequirement = errors.New("no experience requirement found in job description")

// ExperienceRequirement is the structured form of a posting's experience
// demand, e.g. "3 years in data engineering".
type ExperienceRequirement struct {
	Amount int    `json:"amount"`
	Unit   string `json:"unit"`
	Field  string `json:"field,omitempty"`
}

// Duration renders the requirement as "<amount> <unit>".
func (r *ExperienceRequirement) Duration() string {
	return strconv.Itoa(r.Amount) + " " + r.Unit
}

// Job is the structured record produced from one job description.
type Job struct {
	Title          string                 `json:"job_title"`
	Requirement    *ExperienceRequirement `json:"experience_required"`
	RequiredSkills []string               `json:"required_skills"`
	Description    string                 `json:"job_description"`
}

// JobParser extracts the experience requirement and required skills from a
// job description. The job title is not derivable from free text and comes
// from configuration.
type JobParser struct {
	dict  *Dictionary
	title string
}

func NewJobParser(dict *Dictionary, title string) *JobParser {
	return &JobParser{
		dict:  dict,
		title: title,
	}
}

// Requirements collects every experience requirement the rules recognize, in
// rule-then-occurrence order, duplicates kept. Each match also searches a
// short window after itself for a field qualifier ("in data engineering",
// "as a data analyst").
func (p *JobParser) Requirements(text string) []ExperienceRequirement {
	var reqs []ExperienceRequirement

	for _, rule := range requirementRules {
		for _, loc := range rule.re.FindAllStringSubmatchIndex(text, -1) {
			amount, err := strconv.Atoi(group(text, loc, rule.amountGroup))
			if err != nil {
				continue
			}

			reqs = append(reqs, ExperienceRequirement{
				Amount: amount,
				Unit:   strings.ToLower(group(text, loc, rule.unitGroup)),
				Field:  fieldAfter(text, loc[1]),
			})
		}
	}

	return reqs
}

// Parse builds the structured job record. The first requirement the rules
// yield wins; a posting with none is rejected with ErrNoExperienceRequirement.
func (p *JobParser) Parse(text string) (*Job, error) {
	reqs := p.Requirements(text)
	if len(reqs) == 0 {
		return nil, ErrNoExperienceRequirement
	}

	return &Job{
		Title:          p.title,
		Requirement:    &reqs[0],
		RequiredSkills: p.dict.Match(text),
		Description:    text,
	}, nil
}

// fieldAfter inspects the window right after a requirement match for a field
// qualifier. The "in" form is preferred over the "as" form.
func fieldAfter(text string, end int) string {
	stop := end + fieldLookahead
	if stop > len(text) {
		stop = len(text)
	}
	window := text[end:stop]

	if m := fieldInPattern.FindStringSubmatch(window); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := fieldAsPattern.FindStringSubmatch(window); m != nil {
		return strings.TrimSpace(m[1])
	}

	return ""
}

// group extracts one capture group from FindAllStringSubmatchIndex output.
func group(text string, loc []int, n int) string {
	start, end := loc[2*n], loc[2*n+1]
	if start < 0 {
		return ""
	}
	return text[start:end]
}
