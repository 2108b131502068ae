package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSourceRef(t *testing.T) {
	tests := []struct {
		ref       string
		wantName  string
		wantIndex string
	}{
		{"PHB:120", "PHB", "120"},
		{"Homebrew:https://example.com/x", "Homebrew", "https://example.com/x"},
		{" Monster Manual : 43 ", "Monster Manual", "43"},
		{"Loose Notes", "Loose Notes", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		name, index := SplitSourceRef(tt.ref)
		assert.Equal(t, tt.wantName, name, "name of %q", tt.ref)
		assert.Equal(t, tt.wantIndex, index, "index of %q", tt.ref)
	}
}

func TestSourceRefs(t *testing.T) {
	assert.Equal(t, []string{"PHB:120", "MM:43"}, SourceRefs("PHB:120, MM:43,"))
	assert.Nil(t, SourceRefs(""))
	assert.Nil(t, SourceRefs(" , "))
}

func TestSourceHashesFor(t *testing.T) {
	got := SourceHashesFor("Monster Manual: 43, Homebrew:https://example.com/x")

	parts := strings.Split(got, ",")
	assert.Equal(t, []string{SourceHash("Monster Manual"), SourceHash("Homebrew")}, parts)
	assert.Equal(t, "", SourceHashesFor(""))
}
