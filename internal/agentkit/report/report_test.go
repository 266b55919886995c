package report_test

import (
	"strings"
	"testing"

	"github.com/corvid-labs/hybridagent/internal/agent"
	"github.com/corvid-labs/hybridagent/internal/agentkit/report"
	"github.com/stretchr/testify/require"
)

func TestRenderEmpty(t *testing.T) {
	t.Parallel()

	md, html, err := report.Render[int](nil, false)
	require.NoError(t, err)
	require.Contains(t, md, "No tracked activities.")
	require.NotEmpty(t, html)
}

func TestRenderGroups(t *testing.T) {
	t.Parallel()

	groups := []agent.GroupSnapshot[int]{
		{Group: 2, Interrupted: true, Activities: nil},
		{Group: 1, Interrupted: false, Activities: []agent.ActivityId{3, 4}},
	}

	md, html, err := report.Render(groups, true)
	require.NoError(t, err)

	require.Contains(t, md, "cascade shutdown in progress")
	require.Contains(t, md, "Group 2 (interrupted)")
	require.Contains(t, md, "(empty)")
	require.Contains(t, md, "Group 1 (active)")
	require.Contains(t, md, "activity 3")
	require.Contains(t, md, "activity 4")

	got := string(html)
	require.True(t, strings.Contains(got, "<h1>") || strings.Contains(got, "<h2>"))
}
