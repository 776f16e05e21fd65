package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextExtractor_FileDoesNotExist(t *testing.T) {
	extractor := NewTextExtractor()

	_, err := extractor.ExtractText(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestTextExtractor_CorruptDocument(t *testing.T) {
	extractor := NewTextExtractor()

	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf at all"), 0644))

	_, err := extractor.ExtractText(path)
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses blank lines",
			input: "first\n\n\n  second  \n\nthird\n",
			want:  "first\nsecond\nthird",
		},
		{
			name:  "whitespace only",
			input: "   \n\t\n  ",
			want:  "",
		},
		{
			name:  "already clean",
			input: "one line",
			want:  "one line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}
