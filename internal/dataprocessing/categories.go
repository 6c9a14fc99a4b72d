package dataprocessing

import (
	"fmt"
	"sort"
	"strings"
)

// CategorySet is a set of gradebook category labels ("Classwork", "Assessment", ...).
type CategorySet map[string]struct{}

// NewCategorySet builds a set from labels. Surrounding whitespace is ignored.
func NewCategorySet(labels ...string) CategorySet {
	s := make(CategorySet, len(labels))
	for _, l := range labels {
		s[strings.TrimSpace(l)] = struct{}{}
	}
	return s
}

// Contains reports whether label is in the set.
func (s CategorySet) Contains(label string) bool {
	_, ok := s[strings.TrimSpace(label)]
	return ok
}

// Labels returns the labels in sorted order.
func (s CategorySet) Labels() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// AggregationGroup describes one aggregation pass: which categories are merged
// together and how the surviving column is labelled.
type AggregationGroup struct {
	Label      string
	Categories CategorySet
	// Rename renames each representative column to "{lesson key}{Label}".
	Rename bool
}

// Taxonomy is the full category configuration of a run.
type Taxonomy struct {
	Name        string
	Assignments []AggregationGroup
	Assessments CategorySet
}

// Preset names.
const (
	PresetDetailed = "detailed"
	PresetSplit    = "split"
)

// DetailedTaxonomy pools the fine-grained TechSmart assignment categories into
// a single "Assignments" column per lesson.
func DetailedTaxonomy() Taxonomy {
	return Taxonomy{
		Name: PresetDetailed,
		Assignments: []AggregationGroup{
			{
				Label: "Assignments",
				Categories: NewCategorySet(
					"Classwork",
					"Warm Up",
					"Instruction",
					"Instruction Practice",
					"Teacher Code Planning",
					"Teacher Code Writing",
					"Student Code Planning",
					"Student Code Writing",
					"Student Code Debug",
					"Lesson Notes",
				),
			},
		},
		Assessments: NewCategorySet("Lesson Check", "Assessment"),
	}
}

// SplitTaxonomy aggregates Classwork and Homework independently.
func SplitTaxonomy() Taxonomy {
	return Taxonomy{
		Name: PresetSplit,
		Assignments: []AggregationGroup{
			{Label: "Classwork", Categories: NewCategorySet("Classwork"), Rename: true},
			{Label: "Homework", Categories: NewCategorySet("Homework"), Rename: true},
		},
		Assessments: NewCategorySet("Assessment", "Quiz", "Lesson Check"),
	}
}

// TaxonomyByName returns a built-in preset.
func TaxonomyByName(name string) (Taxonomy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetDetailed:
		return DetailedTaxonomy(), nil
	case PresetSplit:
		return SplitTaxonomy(), nil
	default:
		return Taxonomy{}, fmt.Errorf("unknown category preset %q", name)
	}
}
