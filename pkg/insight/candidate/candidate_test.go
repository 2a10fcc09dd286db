package candidate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidBatch(t *testing.T) {
	raw := `{"retro_items":[
		{"content":"Reduce Bowser's kidnapping frequency","category":"actions"},
		{"content":"Guard the castle","category":"actions","cluster_id":2},
		{"content":"Review the moat","category":"start","cluster_id":null}
	]}`

	batch, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, batch, 3)

	assert.Equal(t, "Reduce Bowser's kidnapping frequency", batch[0].Content)
	assert.Nil(t, batch[0].ClusterId)
	require.NotNil(t, batch[1].ClusterId)
	assert.Equal(t, 2, *batch[1].ClusterId)
	assert.Equal(t, "start", batch[2].Category)
	assert.Nil(t, batch[2].ClusterId)
}

func TestParseEmptyList(t *testing.T) {
	batch, err := Parse(`{"retro_items":[]}`)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestParseRejectsWholeBatch(t *testing.T) {
	cases := map[string]string{
		"not json":              `Sure! Here are your items: ...`,
		"missing container":     `{"items":[{"content":"a","category":"actions"}]}`,
		"null container":        `{"retro_items":null}`,
		"bare list":             `[{"content":"a","category":"actions"}]`,
		"non-string content":    `{"retro_items":[{"content":"ok","category":"actions"},{"content":42,"category":"actions"}]}`,
		"missing content":       `{"retro_items":[{"content":"ok","category":"actions"},{"category":"actions"}]}`,
		"missing category":      `{"retro_items":[{"content":"ok"}]}`,
		"null element":          `{"retro_items":[{"content":"ok","category":"actions"},null]}`,
		"fractional cluster id": `{"retro_items":[{"content":"ok","category":"actions","cluster_id":1.5}]}`,
		"string cluster id":     `{"retro_items":[{"content":"ok","category":"actions","cluster_id":"3"}]}`,
		"truncated":             `{"retro_items":[{"content":"ok","category":"act`,
		"empty response":        ``,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			batch, err := Parse(raw)
			assert.Nil(t, batch)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidOutput)

			var invalid *InvalidOutputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, raw, invalid.Raw)
		})
	}
}

func TestSchemaIsValidJSON(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal(Schema, &schema))
	assert.Equal(t, []any{"retro_items"}, schema["required"])
}
