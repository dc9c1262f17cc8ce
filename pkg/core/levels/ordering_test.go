package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RanksFollowDeclarationOrder(t *testing.T) {
	o, err := New([][]string{{"BAS"}, {"AV1"}, {"AV2", "AV.2"}, {"AV3"}})
	require.NoError(t, err)

	assert.Equal(t, 0, o.Rank("BAS"))
	assert.Equal(t, 1, o.Rank("AV1"))
	assert.Equal(t, 2, o.Rank("AV2"))
	assert.Equal(t, 2, o.Rank("AV.2"), "synonyms share a rank")
	assert.Equal(t, 3, o.Rank("AV3"))
}

func TestRank_ConsistentWithDeclaredOrder(t *testing.T) {
	o := Default()
	tags := o.Tags()

	for i, a := range tags {
		for j, b := range tags {
			if i <= j {
				assert.LessOrEqual(t, o.Rank(a), o.Rank(b), "%s should not rank above %s", a, b)
			}
		}
	}
}

func TestRank_UnknownTags(t *testing.T) {
	o := Default()

	for _, tag := range []string{"", "   ", "Avançado", "av.1", "Básico!"} {
		assert.Equal(t, Unknown, o.Rank(tag), "tag %q", tag)
		assert.False(t, o.Known(tag), "tag %q", tag)
	}
}

func TestRank_TrimsWhitespace(t *testing.T) {
	o := Default()
	assert.Equal(t, 1, o.Rank("  Básico "))
	assert.True(t, o.Known("Av.4 "))
}

func TestDefault_MatchesCalendarTable(t *testing.T) {
	o := Default()
	assert.Equal(t, 0, o.Rank("Nenhum"))
	assert.Equal(t, 3, o.Rank("Introdução"))
	assert.Equal(t, 5, o.Rank("Av.2|"))
	assert.Equal(t, 8, o.Rank("Av.4"))
	assert.Len(t, o.Tags(), 9)
}

func TestNew_Errors(t *testing.T) {
	_, err := New([][]string{{"BAS"}, {}})
	assert.ErrorContains(t, err, "no tags")

	_, err = New([][]string{{"BAS", " "}})
	assert.ErrorContains(t, err, "empty tag")

	_, err = New([][]string{{"BAS"}, {"BAS"}})
	assert.ErrorContains(t, err, "declared twice")
}

func TestNew_EmptyTableRanksEverythingUnknown(t *testing.T) {
	o, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, Unknown, o.Rank("BAS"))
	assert.Empty(t, o.Tags())
}
