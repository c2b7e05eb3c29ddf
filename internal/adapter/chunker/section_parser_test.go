package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlocksSections(t *testing.T) {
	text := "Guide Title\n\nIntro paragraph.\n\n" +
		"====\nFIRST SECTION\n====\n" +
		"First body.\n\n" +
		"----\nSECOND SECTION (A & B)\n----\n" +
		"Second body.\n"

	blocks := parseBlocks(text)
	require.Len(t, blocks, 3)

	assert.Equal(t, blockSection, blocks[0].kind)
	assert.Equal(t, "Guide Title", blocks[0].title)
	assert.Equal(t, "Intro paragraph.", blocks[0].body)

	assert.Equal(t, blockSection, blocks[1].kind)
	assert.Equal(t, "FIRST SECTION", blocks[1].title)
	assert.Equal(t, "First body.", blocks[1].body)

	assert.Equal(t, blockSection, blocks[2].kind)
	assert.Equal(t, "SECOND SECTION (A & B)", blocks[2].title)
	assert.Equal(t, "Second body.", blocks[2].body)
}

func TestParseBlocksIntroWithoutBodyDropped(t *testing.T) {
	text := "Lonely Title\n====\nSECTION\n====\nBody.\n"

	// "Lonely Title" has no body of its own, so no intro block.
	blocks := parseBlocks(text)
	require.Len(t, blocks, 1)
	assert.Equal(t, "SECTION", blocks[0].title)
}

func TestParseBlocksMalformedTitleTagged(t *testing.T) {
	text := "====\nnot an uppercase title\n====\nBody text.\n"

	blocks := parseBlocks(text)
	require.Len(t, blocks, 1)
	assert.Equal(t, blockUnrecognized, blocks[0].kind)
	assert.Empty(t, blocks[0].title)
	assert.Equal(t, "Body text.", blocks[0].body)
}

func TestParseBlocksMismatchedDividersNotAHeader(t *testing.T) {
	text := "====\nSECTION\n----\nBody text.\n"

	// Opening and closing dividers must use the same character; this is
	// plain intro text.
	blocks := parseBlocks(text)
	require.Len(t, blocks, 1)
	assert.Equal(t, blockSection, blocks[0].kind)
	assert.Equal(t, "====", blocks[0].title)
}

func TestParseBlocksEmpty(t *testing.T) {
	assert.Empty(t, parseBlocks(""))
	assert.Empty(t, parseBlocks("\n\n  \n"))
}

func TestDividerChar(t *testing.T) {
	tests := []struct {
		line string
		want byte
	}{
		{"===", '='},
		{"==========", '='},
		{"---", '-'},
		{"--", 0},
		{"===-", 0},
		{"***", 0},
		{"", 0},
		{"  ===  ", '='},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dividerChar(tt.line), "line %q", tt.line)
	}
}

func TestIsSectionTitle(t *testing.T) {
	assert.True(t, isSectionTitle("RISK DISCLOSURES"))
	assert.True(t, isSectionTitle("FEES & CHARGES (ANNUAL)"))
	assert.True(t, isSectionTitle("LONG-TERM PLANS"))
	assert.False(t, isSectionTitle(""))
	assert.False(t, isSectionTitle("Mixed Case Title"))
	assert.False(t, isSectionTitle("SECTION 2"))
	assert.False(t, isSectionTitle("---"))
}
