package extract

import (
	"errors"
	"reflect"
	"testing"
)

func testJobParser() *JobParser {
	return NewJobParser(NewDictionary([]string{"Python", "SQL", "Spark"}), "Data Engineer")
}

func TestRequirements(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ExperienceRequirement
	}{
		{
			name: "plus years with field",
			text: "We need 3+ years of experience in data engineering.",
			want: ExperienceRequirement{Amount: 3, Unit: "years", Field: "data engineering"},
		},
		{
			name: "range keeps the lower bound and the unit",
			text: "3 - 5 years of experience in finance",
			want: ExperienceRequirement{Amount: 3, Unit: "years", Field: "finance"},
		},
		{
			name: "minimum phrasing with as-field",
			text: "Minimum 2 years of experience as a data analyst.",
			want: ExperienceRequirement{Amount: 2, Unit: "years", Field: "a data analyst"},
		},
		{
			name: "field stops at a connective",
			text: "5 years of experience in machine learning with Python",
			want: ExperienceRequirement{Amount: 5, Unit: "years", Field: "machine learning"},
		},
		{
			name: "months unit",
			text: "18 months of experience required",
			want: ExperienceRequirement{Amount: 18, Unit: "months", Field: ""},
		},
		{
			name: "bare phrasing still picks up a trailing in-field",
			text: "Requires 4 years in total",
			want: ExperienceRequirement{Amount: 4, Unit: "years", Field: "total"},
		},
	}

	p := testJobParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqs := p.Requirements(tt.text)
			if len(reqs) == 0 {
				t.Fatalf("Requirements() returned nothing")
			}
			if !reflect.DeepEqual(reqs[0], tt.want) {
				t.Fatalf("Requirements()[0] = %+v, want %+v", reqs[0], tt.want)
			}
		})
	}
}

func TestRequirementDuration(t *testing.T) {
	req := &ExperienceRequirement{Amount: 3, Unit: "years"}
	if got := req.Duration(); got != "3 years" {
		t.Fatalf("Duration() = %q, want %q", got, "3 years")
	}
}

func TestParseJob(t *testing.T) {
	p := testJobParser()

	text := "Data Engineer needed. 3+ years of experience in data engineering. Must know Python, SQL and Spark."
	job, err := p.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if job.Title != "Data Engineer" {
		t.Fatalf("Title = %q", job.Title)
	}
	want := &ExperienceRequirement{Amount: 3, Unit: "years", Field: "data engineering"}
	if !reflect.DeepEqual(job.Requirement, want) {
		t.Fatalf("Requirement = %+v, want %+v", job.Requirement, want)
	}
	if !reflect.DeepEqual(job.RequiredSkills, []string{"python", "spark", "sql"}) {
		t.Fatalf("RequiredSkills = %v", job.RequiredSkills)
	}
	if job.Description != text {
		t.Fatalf("Description not preserved")
	}
}

func TestParseJobNoRequirement(t *testing.T) {
	p := testJobParser()

	_, err := p.Parse("Great team, competitive salary, no expectations stated.")
	if !errors.Is(err, ErrNoExperienceRequirement) {
		t.Fatalf("Parse() error = %v, want ErrNoExperienceRequirement", err)
	}
}
