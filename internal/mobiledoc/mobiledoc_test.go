package mobiledoc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_ContainerShape(t *testing.T) {
	encoded, err := Encode("# Hello\n\nSome *markdown*.")
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(encoded), &doc))

	assert.JSONEq(t, `"0.3.1"`, string(doc["version"]))
	assert.JSONEq(t, `[]`, string(doc["markups"]))
	assert.JSONEq(t, `[]`, string(doc["atoms"]))
	assert.JSONEq(t, `[[10,0]]`, string(doc["sections"]))

	var cards [][2]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["cards"], &cards))
	require.Len(t, cards, 1)
	assert.JSONEq(t, `"markdown"`, string(cards[0][0]))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(cards[0][1], &payload))
	assert.Equal(t, "markdown", payload["cardName"])
	assert.Equal(t, "# Hello\n\nSome *markdown*.", payload["markdown"])
}

func TestRoundTrip(t *testing.T) {
	bodies := []string{
		"",
		"plain text",
		"# Heading\n\nwith\nnewlines\n",
		`quotes "and" backslashes \n literal`,
		"unicode: héllo wörld — 日本語",
		"```go\nfunc main() {}\n```",
	}

	for _, body := range bodies {
		encoded, err := Encode(body)
		require.NoError(t, err)

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, body, decoded)
	}
}

func TestDecode_NoMarkdownCard(t *testing.T) {
	_, err := Decode(`{"version":"0.3.1","markups":[],"atoms":[],"cards":[],"sections":[]}`)
	assert.ErrorContains(t, err, "no markdown card")
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode("not a container")
	assert.Error(t, err)
}
