package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorySet(t *testing.T) {
	s := NewCategorySet(" Classwork ", "Homework")
	assert.True(t, s.Contains("Classwork"))
	assert.True(t, s.Contains("Homework "))
	assert.False(t, s.Contains("Assessment"))
	assert.Equal(t, []string{"Classwork", "Homework"}, s.Labels())
}

func TestTaxonomyByName(t *testing.T) {
	tests := []struct {
		name       string
		preset     string
		wantGroups int
		wantErr    bool
	}{
		{"default", "", 1, false},
		{"detailed", "detailed", 1, false},
		{"split upper case", "SPLIT", 2, false},
		{"unknown", "fancy", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, err := TaxonomyByName(tt.preset)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, tax.Assignments, tt.wantGroups)
			assert.NotEmpty(t, tax.Assessments)
		})
	}
}

func TestDetailedTaxonomy_SeparatesAssignmentsFromAssessments(t *testing.T) {
	tax := DetailedTaxonomy()
	for label := range tax.Assessments {
		assert.False(t, tax.Assignments[0].Categories.Contains(label), label)
	}
	assert.True(t, tax.Assignments[0].Categories.Contains("Student Code Debug"))
	assert.False(t, tax.Assignments[0].Rename)
}
