package sidebar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocIndex(t *testing.T) {
	idx, err := ParseDocIndex([]byte(`
docs:
  - id: intro
    title: Introduction
    description: Start here
    permalink: /docs/intro
  - id: bare
    title: No description
`))
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	doc, ok := idx.DocByID("intro")
	require.True(t, ok)
	require.NotNil(t, doc.Description)
	assert.Equal(t, "Start here", *doc.Description)

	doc, ok = idx.DocByID("bare")
	require.True(t, ok)
	assert.Nil(t, doc.Description)

	_, ok = idx.DocByID("")
	assert.False(t, ok)
	_, ok = idx.DocByID("missing")
	assert.False(t, ok)
}

func TestParseDocIndex_MissingID(t *testing.T) {
	_, err := ParseDocIndex([]byte("docs:\n  - title: x\n"))
	require.Error(t, err)
}

func TestDocIndex_NilIsEmpty(t *testing.T) {
	var idx *DocIndex
	_, ok := idx.DocByID("x")
	assert.False(t, ok)
	assert.Equal(t, 0, idx.Len())
}
