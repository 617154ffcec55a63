package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitListDropsBlanksAndWhitespace(t *testing.T) {
	require.Nil(t, splitList(""))
	require.Nil(t, splitList(" , ,"))
	require.Equal(t, []string{"t1", "t2"}, splitList("t1,t2"))
	require.Equal(t, []string{"t1", "t2"}, splitList(" t1 , t2 "))
	require.Equal(t, []string{"t1"}, splitList("t1,"))
}

func TestJoinListRoundTrips(t *testing.T) {
	require.Equal(t, "", joinList(nil))
	require.Equal(t, "t1,t2,t3", joinList([]string{"t1", "t2", "t3"}))
	require.Equal(t, []string{"t1", "t2", "t3"}, splitList(joinList([]string{"t1", "t2", "t3"})))
}
