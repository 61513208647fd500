package extract

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameNotFound is the placeholder used when no candidate name could be
// detected near the top of a resume.
const NameNotFound = "Not Found"

// nameSearchLines bounds how many non-empty lines from the top of a resume are
// inspected for the candidate name.
const nameSearchLines = 5

var titleCaser = cases.Title(language.English)

// ExperienceEntry is one work-history record derived from a detected date
// range and the lines around it. Duration is a unit-less number of years; it
// is not validated, so malformed ranges can produce zero or negative values.
type ExperienceEntry struct {
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
}

// Education is a single extracted degree.
type Education struct {
	Degree string `json:"degree"`
}

// Resume is the structured record produced from one resume text.
type Resume struct {
	Name               string            `json:"name"`
	Email              []string          `json:"email"`
	PhoneNumber        string            `json:"phone_number,omitempty"`
	Skills             []string          `json:"skills"`
	Education          []Education       `json:"education"`
	Experience         []ExperienceEntry `json:"experience"`
	RelevantExperience []ExperienceEntry `json:"relevant_experience"`
	ResumeText         string            `json:"resume_text"`
}

// Reasoner decides which experience entries are relevant to the job's
// required field. Implementations live next to the scoring code; the parser
// only orchestrates the call.
type Reasoner interface {
	Relevant(ctx context.Context, entries []ExperienceEntry, field string) ([]ExperienceEntry, error)
}

// ResumeParser extracts structured facts from raw resume text using the
// pattern library and a shared skill dictionary.
type ResumeParser struct {
	dict *Dictionary

	// now is injectable so "Present" date ranges stay testable.
	now func() time.Time
}

func NewResumeParser(dict *Dictionary) *ResumeParser {
	return &ResumeParser{
		dict: dict,
		now:  time.Now,
	}
}

// Name looks for a candidate name within the first five non-empty lines:
// 2-3 tokens, either fully upper-case or Title Case. The winner is normalized
// to Title Case. Returns an empty string when nothing qualifies.
func (p *ResumeParser) Name(text string) string {
	seen := 0
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		seen++
		if seen > nameSearchLines {
			break
		}

		if allCapsNamePattern.MatchString(line) {
			return titleCaser.String(line)
		}

		if titleCaseNamePattern.MatchString(line) {
			return line
		}
	}

	return ""
}

// Emails returns every address in order of appearance, duplicates included.
func (p *ResumeParser) Emails(text string) []string {
	return emailPattern.FindAllString(text, -1)
}

// Phone returns the first phone-shaped match, but only if it occurs verbatim
// in the text and is shorter than 16 characters. Longer matches are almost
// always embedded numeric IDs, not phone numbers.
func (p *ResumeParser) Phone(text string) string {
	number := phonePattern.FindString(text)
	if number == "" {
		return ""
	}

	if !strings.Contains(text, number) || len(number) >= 16 {
		return ""
	}

	return number
}

// Skills returns the dictionary phrases found in the text as a sorted set.
func (p *ResumeParser) Skills(text string) []string {
	return p.dict.Match(text)
}

// Degrees collects matches from every degree rule in rule order, then
// deduplicates keeping the first occurrence.
func (p *ResumeParser) Degrees(text string) []string {
	var degrees []string
	seen := make(map[string]struct{})

	for _, rule := range degreeRules {
		for _, m := range rule.FindAllStringSubmatch(text, -1) {
			degree := strings.TrimSpace(m[1])
			if degree == "" {
				continue
			}
			if _, ok := seen[degree]; ok {
				continue
			}
			seen[degree] = struct{}{}
			degrees = append(degrees, degree)
		}
	}

	return degrees
}

// ExperienceEntries scans for date ranges and builds one entry per range,
// taking the job title and company from the one or two preceding lines. The
// inline "title at company" form wins over two stacked lines.
func (p *ResumeParser) ExperienceEntries(text string) []ExperienceEntry {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	currentYear := p.now().Year()

	var entries []ExperienceEntry
	for i := range lines {
		match := dateRangePattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if match == nil {
			continue
		}

		duration := rangeDuration(match[1], match[2], currentYear)

		for _, j := range []int{i - 1, i - 2} {
			if j < 0 {
				continue
			}

			titleLine := strings.TrimSpace(lines[j])
			if inline := inlineTitlePattern.FindStringSubmatch(titleLine); inline != nil {
				entries = append(entries, ExperienceEntry{
					JobTitle: strings.TrimSpace(inline[1]),
					Company:  strings.TrimSpace(inline[2]),
					Duration: duration,
				})
				break
			}

			if j-1 >= 0 {
				jobTitle := strings.TrimSpace(lines[j-1])
				company := titleLine
				if jobTitle != "" && company != "" {
					entries = append(entries, ExperienceEntry{
						JobTitle: jobTitle,
						Company:  company,
						Duration: duration,
					})
					break
				}
			}
		}
	}

	return entries
}

// Parse orchestrates all extractors into a full Resume. The reasoner, when
// provided, selects the subset of experience entries relevant to the job's
// required field.
func (p *ResumeParser) Parse(ctx context.Context, text string, req *ExperienceRequirement, reasoner Reasoner) (*Resume, error) {
	name := p.Name(text)
	if name == "" {
		name = NameNotFound
	}

	experience := p.ExperienceEntries(text)

	var relevant []ExperienceEntry
	if reasoner != nil {
		field := ""
		if req != nil {
			field = req.Field
		}

		var err error
		relevant, err = reasoner.Relevant(ctx, experience, field)
		if err != nil {
			return nil, fmt.Errorf("selecting relevant experience: %w", err)
		}
	}

	var education []Education
	for _, degree := range p.Degrees(text) {
		education = append(education, Education{Degree: degree})
	}

	return &Resume{
		Name:               name,
		Email:              p.Emails(text),
		PhoneNumber:        p.Phone(text),
		Skills:             p.Skills(text),
		Education:          education,
		Experience:         experience,
		RelevantExperience: relevant,
		ResumeText:         text,
	}, nil
}

// rangeDuration computes end minus start in years. "Present" and "Current"
// count as the current calendar year. Either side may carry a month name; only
// the four-digit year participates.
func rangeDuration(start, end string, currentYear int) string {
	startYear := yearOf(start)

	endLower := strings.ToLower(strings.TrimSpace(end))
	endYear := currentYear
	if endLower != "present" && endLower != "current" {
		endYear = yearOf(end)
	}

	return strconv.Itoa(endYear - startYear)
}

func yearOf(s string) int {
	year, _ := strconv.Atoi(yearPattern.FindString(s))
	return year
}
