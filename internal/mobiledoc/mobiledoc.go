// Package mobiledoc encodes post bodies into the rich-content container the
// backend stores. The whole body travels as one raw-markdown card; the
// backend renders it natively, so nothing is decomposed into markups or
// atoms.
package mobiledoc

import (
	"encoding/json"
	"fmt"
)

const Version = "0.3.1"

type container struct {
	Version  string               `json:"version"`
	Markups  []json.RawMessage    `json:"markups"`
	Atoms    []json.RawMessage    `json:"atoms"`
	Cards    [][2]json.RawMessage `json:"cards"`
	Sections [][2]int             `json:"sections"`
}

type markdownCard struct {
	CardName string `json:"cardName"`
	Markdown string `json:"markdown"`
}

// Encode wraps markdown into a mobiledoc container holding a single
// markdown card and one section referencing it.
func Encode(markdown string) (string, error) {
	name, err := json.Marshal("markdown")
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(markdownCard{CardName: "markdown", Markdown: markdown})
	if err != nil {
		return "", fmt.Errorf("marshal card: %w", err)
	}

	doc := container{
		Version:  Version,
		Markups:  []json.RawMessage{},
		Atoms:    []json.RawMessage{},
		Cards:    [][2]json.RawMessage{{name, payload}},
		Sections: [][2]int{{10, 0}},
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal mobiledoc: %w", err)
	}
	return string(out), nil
}

// Decode returns the markdown held by a container produced by Encode. The
// round trip is byte-identical.
func Decode(doc string) (string, error) {
	var c container
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		return "", fmt.Errorf("unmarshal mobiledoc: %w", err)
	}

	for _, card := range c.Cards {
		var kind string
		if err := json.Unmarshal(card[0], &kind); err != nil || kind != "markdown" {
			continue
		}
		var payload markdownCard
		if err := json.Unmarshal(card[1], &payload); err != nil {
			return "", fmt.Errorf("unmarshal markdown card: %w", err)
		}
		return payload.Markdown, nil
	}

	return "", fmt.Errorf("mobiledoc %s: no markdown card", c.Version)
}
