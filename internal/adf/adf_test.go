package adf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromText(t *testing.T) {
	t.Run("EmptyInputYieldsEmptyContent", func(t *testing.T) {
		for _, input := range []string{"", "   ", "\n", "\n \n"} {
			doc := FromText(input)
			assert.Equal(t, 1, doc.Version)
			assert.Equal(t, "doc", doc.Type)
			assert.Empty(t, doc.Content, "FromText(%q) should produce zero paragraphs", input)
			assert.NotNil(t, doc.Content, "content must serialize as [] and not null")
		}
	})

	t.Run("TwoLinesBecomeTwoOrderedParagraphs", func(t *testing.T) {
		doc := FromText("a\nb")
		require.Len(t, doc.Content, 2)
		require.Len(t, doc.Content[0].Content, 1)
		require.Len(t, doc.Content[1].Content, 1)
		assert.Equal(t, "a", doc.Content[0].Content[0].Text)
		assert.Equal(t, "b", doc.Content[1].Content[0].Text)
		assert.Equal(t, "paragraph", doc.Content[0].Type)
		assert.Equal(t, "text", doc.Content[0].Content[0].Type)
	})

	t.Run("EdgeBlankLinesDroppedInternalKept", func(t *testing.T) {
		doc := FromText("\n\nfirst\n\nsecond\n\n")
		require.Len(t, doc.Content, 3, "internal blank line should survive as a paragraph break")
		assert.Equal(t, "first", doc.Content[0].Content[0].Text)
		assert.Empty(t, doc.Content[1].Content)
		assert.Equal(t, "second", doc.Content[2].Content[0].Text)
	})

	t.Run("SerializesToExpectedWireShape", func(t *testing.T) {
		data, err := json.Marshal(FromText("hello"))
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"version":1,"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hello"}]}]}`,
			string(data))
	})

	t.Run("EmptyDocumentSerializesWithEmptyArray", func(t *testing.T) {
		data, err := json.Marshal(FromText(""))
		require.NoError(t, err)
		assert.JSONEq(t, `{"version":1,"type":"doc","content":[]}`, string(data))
	})
}
