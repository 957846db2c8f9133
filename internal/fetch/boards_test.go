package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBoard(t *testing.T) {
	tests := []struct {
		url  string
		want Board
	}{
		{"https://job-boards.greenhouse.io/acme/jobs/7063751", BoardGreenhouse},
		{"https://boards.greenhouse.io/acme/jobs/123", BoardGreenhouse},
		{"https://jobs.lever.co/acme/5f1c", BoardLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", BoardWorkday},
		{"https://jobs.ashbyhq.com/acme/123", BoardAshby},
		{"https://careers.acme.com/jobs/1", BoardUnknown},
		{"https://notgreenhouse.io/jobs/1", BoardUnknown},
		{"::not a url", BoardUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectBoard(tt.url))
		})
	}
}

func TestBoard_ContentSelectorsEndWithGeneric(t *testing.T) {
	generic := JobPostingSelectors()

	for _, board := range []Board{BoardGreenhouse, BoardLever, BoardWorkday, BoardAshby, BoardUnknown} {
		selectors := board.ContentSelectors()
		assert.Equal(t, generic, selectors[len(selectors)-len(generic):], board)
	}
	assert.Equal(t, generic, BoardUnknown.ContentSelectors())
	assert.Equal(t, ".job__description", BoardGreenhouse.ContentSelectors()[0])
}

func TestBoard_NoiseSelectors(t *testing.T) {
	assert.Contains(t, BoardUnknown.NoiseSelectors(), "form")
	assert.Contains(t, BoardGreenhouse.NoiseSelectors(), "#usa_self_id_section")
	assert.Contains(t, BoardLever.NoiseSelectors(), ".posting-apply")
	assert.NotContains(t, BoardUnknown.NoiseSelectors(), ".posting-apply")
}
