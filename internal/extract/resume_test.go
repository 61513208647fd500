package extract

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func testParser() *ResumeParser {
	p := NewResumeParser(NewDictionary([]string{"Python", "AWS", "Machine Learning"}))
	p.now = func() time.Time { return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC) }
	return p
}

func TestName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "all caps normalized to title case",
			text: "JOHN DOE\nData Engineer\njohn@example.com",
			want: "John Doe",
		},
		{
			name: "title case kept as is",
			text: "resume\nJane Ann Smith\njane@example.com",
			want: "Jane Ann Smith",
		},
		{
			name: "single token is not a name",
			text: "John\nresume text",
			want: "",
		},
		{
			name: "name past the fifth non-empty line is ignored",
			text: "resume\n\nprofile\nsummary\n\nskills\nexperience\nJohn Doe",
			want: "",
		},
		{
			name: "empty lines do not count against the window",
			text: "\n\n\nresume\n\nJohn Doe",
			want: "John Doe",
		},
	}

	p := testParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Name(tt.text); got != tt.want {
				t.Fatalf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmails(t *testing.T) {
	p := testParser()

	text := "Contact: a@b.com or x@y.org, also a@b.com"
	want := []string{"a@b.com", "x@y.org", "a@b.com"}
	if got := p.Emails(text); !reflect.DeepEqual(got, want) {
		t.Fatalf("Emails() = %v, want %v", got, want)
	}

	if got := p.Emails("no addresses here"); got != nil {
		t.Fatalf("Emails() = %v, want nil", got)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "international format",
			text: "Call me at +1 234 567 8901 anytime",
			want: "+1 234 567 8901",
		},
		{
			name: "first match wins",
			text: "home: 212-555-0134 mobile: 917-555-0199",
			want: "212-555-0134",
		},
		{
			name: "long digit runs are not phone numbers",
			text: "account 12345678901234567890",
			want: "",
		},
		{
			name: "no match",
			text: "nothing numeric enough",
			want: "",
		},
	}

	p := testParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Phone(tt.text); got != tt.want {
				t.Fatalf("Phone() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDegrees(t *testing.T) {
	p := testParser()

	text := "Bachelor of Science (2018)\nMS in Data Analytics (2020)\nBachelor of Science (2018)"
	want := []string{"Bachelor of Science", "MS in Data Analytics"}
	if got := p.Degrees(text); !reflect.DeepEqual(got, want) {
		t.Fatalf("Degrees() = %v, want %v", got, want)
	}

	if got := p.Degrees("no education section"); got != nil {
		t.Fatalf("Degrees() = %v, want nil", got)
	}
}

func TestExperienceEntries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []ExperienceEntry
	}{
		{
			name: "inline title and company",
			text: "Data Engineer at Acme Corp\n2018 - 2021",
			want: []ExperienceEntry{{JobTitle: "Data Engineer", Company: "Acme Corp", Duration: "3"}},
		},
		{
			name: "present resolves to the current year",
			text: "Senior Analyst\nInitech\nJan 2019 - Present",
			want: []ExperienceEntry{{JobTitle: "Senior Analyst", Company: "Initech", Duration: "5"}},
		},
		{
			name: "reversed range keeps the negative duration",
			text: "Developer at Hooli\n2021 - 2018",
			want: []ExperienceEntry{{JobTitle: "Developer", Company: "Hooli", Duration: "-3"}},
		},
		{
			name: "date range with no context lines",
			text: "2018 - 2021",
			want: nil,
		},
	}

	p := testParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ExperienceEntries(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExperienceEntries() = %v, want %v", got, tt.want)
			}
		})
	}
}

type stubReasoner struct {
	entries []ExperienceEntry
	field   string
	err     error
}

func (s *stubReasoner) Relevant(_ context.Context, entries []ExperienceEntry, field string) ([]ExperienceEntry, error) {
	s.field = field
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func TestParse(t *testing.T) {
	p := testParser()

	text := "JOHN DOE\njohn@example.com\n+1 234 567 8901\n\nData Engineer at Acme Corp\n2018 - 2021\nSkills: Python, AWS, Machine Learning\nBachelor of Science (2018)"

	relevant := []ExperienceEntry{{JobTitle: "Data Engineer", Company: "Acme Corp", Duration: "3"}}
	reasoner := &stubReasoner{entries: relevant}
	req := &ExperienceRequirement{Amount: 3, Unit: "years", Field: "data engineering"}

	resume, err := p.Parse(context.Background(), text, req, reasoner)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if resume.Name != "John Doe" {
		t.Fatalf("Name = %q, want John Doe", resume.Name)
	}
	if !reflect.DeepEqual(resume.Email, []string{"john@example.com"}) {
		t.Fatalf("Email = %v", resume.Email)
	}
	if resume.PhoneNumber != "+1 234 567 8901" {
		t.Fatalf("PhoneNumber = %q", resume.PhoneNumber)
	}
	if !reflect.DeepEqual(resume.Skills, []string{"aws", "machine learning", "python"}) {
		t.Fatalf("Skills = %v", resume.Skills)
	}
	if !reflect.DeepEqual(resume.Education, []Education{{Degree: "Bachelor of Science"}}) {
		t.Fatalf("Education = %v", resume.Education)
	}
	if !reflect.DeepEqual(resume.RelevantExperience, relevant) {
		t.Fatalf("RelevantExperience = %v", resume.RelevantExperience)
	}
	if reasoner.field != "data engineering" {
		t.Fatalf("reasoner received field %q", reasoner.field)
	}
	if resume.ResumeText != text {
		t.Fatalf("ResumeText not preserved")
	}
}

func TestParseNameFallback(t *testing.T) {
	p := testParser()

	resume, err := p.Parse(context.Background(), "just some text\nwith no name", nil, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if resume.Name != NameNotFound {
		t.Fatalf("Name = %q, want %q", resume.Name, NameNotFound)
	}
	if resume.RelevantExperience != nil {
		t.Fatalf("RelevantExperience = %v, want nil without a reasoner", resume.RelevantExperience)
	}
}
