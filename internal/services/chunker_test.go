package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkText(t *testing.T) {
	chunker := NewTextChunker()

	tests := []struct {
		name    string
		text    string
		size    int
		overlap int
		want    []string
	}{
		{
			name: "empty text",
			text: "  \n\n  ",
			size: 100,
			want: nil,
		},
		{
			name: "paragraphs fit in one chunk",
			text: "first\n\nsecond",
			size: 100,
			want: []string{"first\n\nsecond"},
		},
		{
			name: "paragraphs split without overlap",
			text: "aaaa\n\nbbbb",
			size: 8,
			want: []string{"aaaa", "bbbb"},
		},
		{
			name:    "overlap carries tail of previous chunk",
			text:    "aaaa\n\nbbbb",
			size:    8,
			overlap: 2,
			want:    []string{"aaaa", "aa\n\nbbbb"},
		},
		{
			name: "long paragraph split by sentence",
			text: "One two. Three four! Five six?",
			size: 10,
			want: []string{"One two", "Three four", "Five six"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chunker.ChunkText(tt.text, tt.size, tt.overlap))
		})
	}
}

func TestChunkTextDefaults(t *testing.T) {
	text := strings.Repeat("Word one. ", 300)
	chunks := NewTextChunker().ChunkText(text, 0, -5)

	assert.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 1000)
	}
}
