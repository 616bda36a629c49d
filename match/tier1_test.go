package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSubsequence(t *testing.T) {
	tests := []struct {
		name       string
		components []string
		sequence   []string
		want       bool
	}{
		{"exact order", []string{"A", "B"}, []string{"A", "B"}, true},
		{"non-contiguous", []string{"A", "B"}, []string{"A", "X", "B"}, true},
		{"reversed", []string{"A", "B"}, []string{"B", "A"}, false},
		{"incomplete", []string{"A", "B"}, []string{"A"}, false},
		{"empty components", nil, []string{"A"}, true},
		{"empty sequence", []string{"A"}, nil, false},
		{"repeated needed", []string{"A", "A"}, []string{"A", "B", "A"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSubsequence(tt.components, tt.sequence))
		})
	}
}

func TestContainsAll(t *testing.T) {
	set := map[string]struct{}{"A": {}, "B": {}}

	assert.True(t, containsAll(set, []string{"A"}))
	assert.True(t, containsAll(set, []string{"A", "B"}))
	assert.True(t, containsAll(set, nil))
	assert.False(t, containsAll(set, []string{"A", "C"}))
}
