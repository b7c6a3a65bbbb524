// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"reflect"
	"testing"

	"github.com/pdiddy/citegraph/pkg/types"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"prefixed", "https://openalex.org/W2741809807", "W2741809807"},
		{"already bare", "W2741809807", "W2741809807"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeID(tt.in); got != tt.want {
				t.Errorf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"prefixed", "https://doi.org/10.5555/3295222.3295349", "10.5555/3295222.3295349"},
		{"already bare", "10.5555/3295222.3295349", "10.5555/3295222.3295349"},
		{"case preserved", "https://doi.org/10.1000/AbC", "10.1000/AbC"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDOI(tt.in); got != tt.want {
				t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeWork(t *testing.T) {
	w := Work{
		ID:    "https://openalex.org/W111",
		DOI:   "https://doi.org/10.1000/xyz",
		Title: "A Study of Things",
		PrimaryTopic: PrimaryTopic{
			Subfield: Subfield{DisplayName: "Artificial Intelligence"},
		},
		ReferencedWorksCount: 2,
		ReferencedWorks: []string{
			"https://openalex.org/W222",
			"W333",
		},
		CitedByCount: 7,
	}

	got := NormalizeWork(w)
	want := types.Publication{
		ID:              "W111",
		DOI:             "10.1000/xyz",
		Title:           "A Study of Things",
		SubArea:         types.SubAreaUnknown,
		Subfield:        "Artificial Intelligence",
		ReferencedWorks: []string{"W222", "W333"},
		CitedByCount:    7,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeWork() = %+v, want %+v", got, want)
	}
}

func TestNormalizeWorkMissingFields(t *testing.T) {
	got := NormalizeWork(Work{})
	if got.ID != "" || got.DOI != "" || got.Title != "" || got.CitedByCount != 0 {
		t.Errorf("zero work should normalize to zero fields, got %+v", got)
	}
	if got.SubArea != types.SubAreaUnknown {
		t.Errorf("sub-area = %q, want %q", got.SubArea, types.SubAreaUnknown)
	}
	if len(got.ReferencedWorks) != 0 {
		t.Errorf("referenced works = %v, want empty", got.ReferencedWorks)
	}
}
