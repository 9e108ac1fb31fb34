package hdrmap_test

import (
	"testing"

	"github.com/fwojciec/hdrmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPolicy_Select(t *testing.T) {
	t.Parallel()

	mixed := []string{"std::vector", "some other index"}
	all := []string{"std::printf", "std::fprintf"}
	none := []string{"Containers library", "Iterators"}

	t.Run("any keeps prefixed candidates of a mixed heading", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"vector"}, hdrmap.MatchAny.Select(mixed, "std::"))
	})

	t.Run("all rejects a mixed heading", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, hdrmap.MatchAll.Select(mixed, "std::"))
	})

	t.Run("both accept a fully prefixed heading", func(t *testing.T) {
		t.Parallel()

		want := []string{"printf", "fprintf"}
		assert.Equal(t, want, hdrmap.MatchAny.Select(all, "std::"))
		assert.Equal(t, want, hdrmap.MatchAll.Select(all, "std::"))
	})

	t.Run("both reject a heading without prefixed candidates", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, hdrmap.MatchAny.Select(none, "std::"))
		assert.Empty(t, hdrmap.MatchAll.Select(none, "std::"))
	})
}

func TestParseMatchPolicy(t *testing.T) {
	t.Parallel()

	p, err := hdrmap.ParseMatchPolicy("all")
	require.NoError(t, err)
	assert.Equal(t, hdrmap.MatchAll, p)

	p, err = hdrmap.ParseMatchPolicy("any")
	require.NoError(t, err)
	assert.Equal(t, hdrmap.MatchAny, p)
	assert.Equal(t, "any", p.String())

	_, err = hdrmap.ParseMatchPolicy("some")
	require.Error(t, err)
	assert.Equal(t, hdrmap.EINVALID, hdrmap.ErrorCode(err))
}

func TestPageResult_Skipped(t *testing.T) {
	t.Parallel()

	assert.True(t, (&hdrmap.PageResult{}).Skipped())
	assert.False(t, (&hdrmap.PageResult{Identifiers: []string{"foo"}}).Skipped())
	assert.False(t, (&hdrmap.PageResult{Header: "cstdio"}).Skipped())
}
