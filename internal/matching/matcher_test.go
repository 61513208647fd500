package matching

import (
	"encoding/json"
	"os"
	"reflect"
	"testing"
)

func TestResultsSort(t *testing.T) {
	results := &Results{Items: []*Result{
		{Filename: "low.txt", Score: 0.51},
		{Filename: "high.txt", Score: 0.93},
		{Filename: "mid.txt", Score: 0.7},
	}}

	results.Sort()

	want := []string{"high.txt", "mid.txt", "low.txt"}
	if got := results.Filenames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Filenames() after Sort() = %v, want %v", got, want)
	}
}

func TestResultsDumpToTmpFile(t *testing.T) {
	results := &Results{Items: []*Result{
		{Filename: "a.txt", CandidateName: "Alice Smith", Score: 0.9},
	}}

	filename, err := results.DumpToTmpFile()
	if err != nil {
		t.Fatalf("DumpToTmpFile() error = %v", err)
	}
	defer os.Remove(filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var decoded Results
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding dump: %v", err)
	}

	if decoded.Len() != 1 || decoded.Items[0].CandidateName != "Alice Smith" {
		t.Fatalf("unexpected dump contents: %+v", decoded)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.555, 0.56},
		{0.554, 0.55},
		{1, 1},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Fatalf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
