package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		issues   []Issue
		expected Status
	}{
		{
			name:     "no issues",
			issues:   nil,
			expected: StatusPass,
		},
		{
			name:     "warnings only",
			issues:   []Issue{{Severity: SeverityWarning}, {Severity: SeverityWarning}},
			expected: StatusWarn,
		},
		{
			name:     "single critical",
			issues:   []Issue{{Severity: SeverityCritical}},
			expected: StatusFail,
		},
		{
			name:     "critical among warnings",
			issues:   []Issue{{Severity: SeverityWarning}, {Severity: SeverityCritical}},
			expected: StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFor(tt.issues))
		})
	}
}

func TestMerge(t *testing.T) {
	t.Run("all skipped stays skipped", func(t *testing.T) {
		merged := Merge(Skipped(), Skipped())
		assert.Equal(t, StatusSkip, merged.Status)
		assert.Empty(t, merged.Issues)
	})

	t.Run("skip plus pass is pass", func(t *testing.T) {
		merged := Merge(Skipped(), NewAuditResult(nil))
		assert.Equal(t, StatusPass, merged.Status)
	})

	t.Run("issues concatenate and status re-derives", func(t *testing.T) {
		a := NewAuditResult([]Issue{{Severity: SeverityWarning, Phase: 1}})
		b := NewAuditResult([]Issue{{Severity: SeverityCritical, Phase: 3}})
		merged := Merge(a, b)
		assert.Len(t, merged.Issues, 2)
		assert.Equal(t, StatusFail, merged.Status)
	})

	t.Run("empty input", func(t *testing.T) {
		merged := Merge()
		assert.Equal(t, StatusPass, merged.Status)
	})
}
