package extract

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	_ "embed"
)

// The skill dictionary is loaded once and shared read-only across all
// documents; Dictionary has no mutating methods after construction.

//go:embed skill_patterns.jsonl
var defaultSkillPatterns []byte

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// tokenPattern defines what counts as a token during phrase matching. Letters,
// digits, + and # stick together, with inner dots kept so "node.js" stays one
// token.
var tokenPattern = regexp.MustCompile(`[a-z0-9+#]+(?:\.[a-z0-9+#]+)*`)

// Dictionary matches known skill phrases in free text, case-insensitively and
// longest phrase first.
type Dictionary struct {
	phrases   map[string]struct{}
	maxTokens int
}

// NewDictionary builds a dictionary from plain phrase strings.
func NewDictionary(phrases []string) *Dictionary {
	d := &Dictionary{phrases: make(map[string]struct{}, len(phrases))}
	for _, phrase := range phrases {
		tokens := tokenize(phrase)
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) > d.maxTokens {
			d.maxTokens = len(tokens)
		}
		d.phrases[strings.Join(tokens, " ")] = struct{}{}
	}
	return d
}

// LoadDictionary reads a JSONL skill pattern file, one {"pattern": "..."}
// object per line.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skill patterns from %q: %w", path, err)
	}

	dict, err := parseDictionary(data)
	if err != nil {
		return nil, fmt.Errorf("parsing skill patterns from %q: %w", path, err)
	}

	return dict, nil
}

// DefaultDictionary returns the dictionary built from the embedded skill
// pattern asset. It is constructed on first use and reused afterwards.
func DefaultDictionary() *Dictionary {
	defaultOnce.Do(func() {
		dict, err := parseDictionary(defaultSkillPatterns)
		if err != nil {
			// The embedded asset is validated by tests; an error here means
			// a broken build, not a runtime condition.
			panic(fmt.Sprintf("embedded skill patterns are invalid: %v", err))
		}
		defaultDict = dict
	})
	return defaultDict
}

func parseDictionary(data []byte) (*Dictionary, error) {
	var phrases []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var entry struct {
			Pattern string `json:"pattern"`
		}
		if err := json.Unmarshal([]byte(text), &entry); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if strings.TrimSpace(entry.Pattern) == "" {
			return nil, fmt.Errorf("line %d: empty pattern", line)
		}

		phrases = append(phrases, entry.Pattern)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NewDictionary(phrases), nil
}

// Match returns the skill phrases found in the text as a sorted set. Matching
// walks the token stream and prefers the longest known phrase at each
// position, so "machine learning" never degrades into "machine".
func (d *Dictionary) Match(text string) []string {
	if d == nil || len(d.phrases) == 0 {
		return nil
	}

	tokens := tokenize(text)
	found := make(map[string]struct{})

	for i := 0; i < len(tokens); i++ {
		max := d.maxTokens
		if i+max > len(tokens) {
			max = len(tokens) - i
		}

		for n := max; n >= 1; n-- {
			candidate := strings.Join(tokens[i:i+n], " ")
			if _, ok := d.phrases[candidate]; ok {
				found[candidate] = struct{}{}
				i += n - 1
				break
			}
		}
	}

	matched := make([]string, 0, len(found))
	for phrase := range found {
		matched = append(matched, phrase)
	}
	sort.Strings(matched)

	return matched
}

// Size reports how many phrases the dictionary holds.
func (d *Dictionary) Size() int {
	if d == nil {
		return 0
	}
	return len(d.phrases)
}

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
