package extract

import "regexp"

// The extraction logic below is rule-driven: every field is backed by an
// ordered list of compiled patterns with an explicit selection policy. The
// order of the rules is part of the contract and must not change.

var (
	// emailPattern matches standard local@domain.tld addresses.
	// Selection policy: all matches, in order of appearance, duplicates kept.
	emailPattern = regexp.MustCompile(`(?i)[a-z0-9.\-+_]+@[a-z0-9.\-+_]+\.[a-z]+`)

	// phonePattern matches international-leaning digit groups: an optional
	// leading + or (, then at least nine digits/separators ending in a digit.
	// Selection policy: first match only, validated by the caller.
	phonePattern = regexp.MustCompile(`[+(]?[1-9][0-9 .\-()]{8,}[0-9]`)

	// Candidate-name shapes for the top lines of a resume: 2-3 tokens, either
	// fully upper-case or Title Case. Selection policy: first qualifying line
	// among the first five non-empty ones.
	allCapsNamePattern   = regexp.MustCompile(`^([A-Z]{2,}\s){1,2}[A-Z]{2,}$`)
	titleCaseNamePattern = regexp.MustCompile(`^([A-Z][a-z]+\s){1,2}[A-Z][a-z]+$`)

	// dateRangePattern detects ranges like "Jan 2019 - Dec 2021" or
	// "2018 to Present". Selection policy: one experience entry per match.
	dateRangePattern = regexp.MustCompile(`(?i)((?:[A-Za-z]{3,9}\s+)?\d{4})\s*[-–to]+\s*((?:[A-Za-z]{3,9}\s+)?\d{4}|Present|Current)`)

	// inlineTitlePattern splits "Job Title at Company" / "Job Title, Company" /
	// "Job Title - Company" lines.
	inlineTitlePattern = regexp.MustCompile(`(?i)(.*?)(?: at |, |- )(.+)`)

	// yearPattern pulls the year out of a date-range side that may carry a
	// month name.
	yearPattern = regexp.MustCompile(`\d{4}`)
)

// degreeRules capture common degree formats. Selection policy: collect every
// match of every rule, in rule order, then deduplicate keeping the first
// occurrence.
var degreeRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Bachelor\s+of\s+[A-Za-z\s&,]+)`),              // Bachelor of Science
	regexp.MustCompile(`(?i)(Master\s+of\s+[A-Za-z\s&]+)`),                 // Master of Engineering
	regexp.MustCompile(`(?i)(Doctor\s+of\s+[A-Za-z\s&]+)`),                 // Doctor of Philosophy
	regexp.MustCompile(`(?i)(BS\s+in\s+[A-Za-z\s&]+)`),                     // BS in Computer Science
	regexp.MustCompile(`(?i)(MS\s+in\s+[A-Za-z\s&]+)`),                     // MS in Data Analytics
	regexp.MustCompile(`(?i)(Ph\.?D\s+in\s+[A-Za-z\s&]+)`),                 // PhD in Biology
	regexp.MustCompile(`(?i)\b(BS\s+[A-Za-z\s&]+)\b`),                      // BS Computer Science
	regexp.MustCompile(`(?i)\b(MS\s+[A-Za-z\s&]+)\b`),                      // MS Software Engineering
	regexp.MustCompile(`(?i)\b(Ph\.?D\s+[A-Za-z\s&]+)\b`),                  // PhD Mathematics
	regexp.MustCompile(`(?i)\b((?:B\.?S\.?|M\.?S\.?|Ph\.?D\.?)\s+[A-Z][a-zA-Z]*(?:\s+[A-Z][a-zA-Z]*){0,3})`), // abbreviated forms
	regexp.MustCompile(`(?i)([A-Za-z\s]*Degree\s+in\s+[A-Za-z\s&]+)`),      // Associate Degree in Nursing
}

// requirementRule is one way a job posting states its experience requirement.
// Range-style rules carry the upper bound in an extra group, so each rule
// names which groups hold the amount and the unit.
type requirementRule struct {
	re          *regexp.Regexp
	amountGroup int
	unitGroup   int
}

// requirementRules go from the most explicit phrasing to the barest one.
// Selection policy: collect every match of every rule in rule-then-occurrence
// order, no deduplication; the first element of the collected list wins.
var requirementRules = []requirementRule{
	{regexp.MustCompile(`(?i)(\d+)\s*[-–to]+\s*(\d+)\s*(years?|months?|yrs?)`), 1, 3},                            // 3-5 years
	{regexp.MustCompile(`(?i)experience\s*[:\-]?\s*(\d+)\s*[-–]\s*(\d+)\s*(years?|months?|yrs?)`), 1, 3},         // Experience: 3-5 years
	{regexp.MustCompile(`(?i)(\d+)\s*(years?|months?|yrs?)\s+experience`), 1, 2},                                 // 3 years experience
	{regexp.MustCompile(`(?i)(?:at least|min(?:imum)? of|minimum)\s+(\d+)\s*(years?|months?|yrs?)\s+of experience`), 1, 2}, // at least 3 years of experience
	{regexp.MustCompile(`(?i)(\d+)\+?\s*(years?|months?|yrs?)\s+(?:of\s+)?experience`), 1, 2},                    // 3+ years of experience
	{regexp.MustCompile(`(?i)(\d+)\s*\+\s*(years?|months?|yrs?)`), 1, 2},                                         // 3 + years
	{regexp.MustCompile(`(?i)(\d+)\s*(years?|months?|yrs?)`), 1, 2},                                              // 3 years
}

// Field/role context right after a requirement match, e.g. "in data
// engineering" or "as a data analyst". The capture stops at punctuation or a
// connective word. The "in" form is tried before the "as" form.
var (
	fieldInPattern = regexp.MustCompile(`(?i)in ([\w\s/&\-]+?)([.,;]| with| using| on| and| for|$)`)
	fieldAsPattern = regexp.MustCompile(`(?i)as ([\w\s/&\-]+?)([.,;]| with| using| on| and| for|$)`)
)

// fieldLookahead is how far past a requirement match the field context is
// searched for.
const fieldLookahead = 80
