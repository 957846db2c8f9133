package fetch

import (
	"net/url"
	"strings"
)

// Board is a recognised applicant-tracking job board.
type Board string

const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardAshby      Board = "ashby"
	BoardUnknown    Board = "unknown"
)

var boardHosts = []struct {
	suffix string
	board  Board
}{
	{"greenhouse.io", BoardGreenhouse},
	{"lever.co", BoardLever},
	{"myworkdayjobs.com", BoardWorkday},
	{"workday.com", BoardWorkday},
	{"ashbyhq.com", BoardAshby},
}

// DetectBoard identifies the job board hosting rawURL.
func DetectBoard(rawURL string) Board {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return BoardUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range boardHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.board
		}
	}
	return BoardUnknown
}

// ContentSelectors returns the description selectors for the board, ending with the generic ones.
func (b Board) ContentSelectors() []string {
	var specific []string
	switch b {
	case BoardGreenhouse:
		specific = []string{".job__description", "#content .body", ".job-post-container"}
	case BoardLever:
		specific = []string{".posting-page .section-wrapper", ".posting-description"}
	case BoardWorkday:
		specific = []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"}
	case BoardAshby:
		specific = []string{"[class*='descriptionText']"}
	}
	return append(specific, JobPostingSelectors()...)
}

// NoiseSelectors returns elements to strip before extracting text: application forms,
// EEO disclosures and share widgets.
func (b Board) NoiseSelectors() []string {
	noise := []string{
		"form",
		".application-form",
		"#application-form",
		".eeo-statement",
		".voluntary-disclosure",
		".social-share",
	}
	switch b {
	case BoardGreenhouse:
		noise = append(noise, ".application--wrapper", "#usa_self_id_section")
	case BoardLever:
		noise = append(noise, ".posting-apply", ".apply-section")
	case BoardWorkday:
		noise = append(noise, "[data-automation-id='applyButton']")
	}
	return noise
}
