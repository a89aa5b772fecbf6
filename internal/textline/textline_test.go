package textline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeadingInts(t *testing.T) {
	vals, rest := LeadingInts("12\t-3\t 7\tabc 5", 5)
	require.Equal(t, []int{12, -3, 7}, vals)
	require.Equal(t, "\tabc 5", rest)

	vals, rest = LeadingInts("1\t2\t3,4", 2)
	require.Equal(t, []int{1, 2}, vals)
	require.Equal(t, "\t3,4", rest)

	vals, _ = LeadingInts("   ", 3)
	require.Empty(t, vals)
}

func TestResultStopsAtInvalid(t *testing.T) {
	var r Result
	require.True(t, r.Add(1, Complete))
	require.True(t, r.Add(2, Partial))
	require.False(t, r.Add(3, Invalid))
	require.False(t, r.Add(4, Complete))

	require.Equal(t, Result{Lines: 2, Partial: 1, Stopped: true, StopAt: 3}, r)
}

func TestLines(t *testing.T) {
	require.Nil(t, Lines(""))
	require.Equal(t, []string{"a", "b"}, Lines("a\r\nb\n"))
	require.Equal(t, Partial, Worse(Complete, Partial))
	require.Equal(t, Invalid, Worse(Invalid, Partial))
}
