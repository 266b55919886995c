// Package report renders a supervisor's Tracker snapshot as a Markdown
// status report, converted to HTML with goldmark, for use in dashboards
// or CLI status output.
package report

import (
	"bytes"
	"fmt"

	"github.com/corvid-labs/hybridagent/internal/agent"
	"github.com/yuin/goldmark"
)

// Render builds a Markdown document describing groups, then converts it
// to HTML. It returns both; callers that only want one can discard the
// other.
func Render[G any](groups []agent.GroupSnapshot[G], terminating bool) (markdown string, html []byte, err error) {
	var buf bytes.Buffer

	buf.WriteString("# Supervisor status\n\n")
	if terminating {
		buf.WriteString("_cascade shutdown in progress_\n\n")
	}

	if len(groups) == 0 {
		buf.WriteString("No tracked activities.\n")
	}

	for _, g := range groups {
		status := "active"
		if g.Interrupted {
			status = "interrupted"
		}
		fmt.Fprintf(&buf, "## Group %v (%s)\n\n", g.Group, status)

		if len(g.Activities) == 0 {
			buf.WriteString("- (empty)\n\n")
			continue
		}
		for _, id := range g.Activities {
			fmt.Fprintf(&buf, "- activity %d\n", id)
		}
		buf.WriteString("\n")
	}

	markdown = buf.String()

	var htmlBuf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &htmlBuf); err != nil {
		return markdown, nil, err
	}

	return markdown, htmlBuf.Bytes(), nil
}
