package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitExtended(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    ExtendedContent
	}{
		{
			name:    "no marker",
			content: " Just one part. ",
			want:    ExtendedContent{Main: "Just one part."},
		},
		{
			name:    "plain marker",
			content: "<p>Intro</p>\n<!--more-->\n<p>Body</p>",
			want:    ExtendedContent{Main: "<p>Intro</p>", Extended: "<p>Body</p>"},
		},
		{
			name:    "custom more text",
			content: "Intro<!--more Keep reading-->Body",
			want:    ExtendedContent{Main: "Intro", Extended: "Body"},
		},
		{
			name:    "only first marker splits",
			content: "A<!--more-->B<!--more-->C",
			want:    ExtendedContent{Main: "A", Extended: "B<!--more-->C"},
		},
		{
			name:    "empty",
			content: "",
			want:    ExtendedContent{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitExtended(tt.content))
		})
	}
}
