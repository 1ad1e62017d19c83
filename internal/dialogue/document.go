// Package dialogue holds the dialogue document model, its remote fetch and
// the {tag} markup tokenizer used to place inline emoji.
package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Entry is one line of dialogue.
type Entry struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Emoji maps a markup tag to an image URL.
type Emoji struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Avatar maps a speaker to a portrait image and a side of the screen.
type Avatar struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Position string `json:"position"`
}

// Side of the screen a portrait is drawn on.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

// Side returns SideLeft only for position "left"; anything else, including
// an empty position, is drawn on the right.
func (a Avatar) Side() Side {
	if a.Position == "left" {
		return SideLeft
	}
	return SideRight
}

// Document is the remote dialogue payload. The "emojies" spelling is the
// field name used by the endpoint.
type Document struct {
	Dialogue []Entry  `json:"dialogue"`
	Emojis   []Emoji  `json:"emojies"`
	Avatars  []Avatar `json:"avatars"`
}

// Decode parses a document and rejects one without dialogue lines.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode dialogue document: %w", err)
	}
	if len(doc.Dialogue) == 0 {
		return nil, fmt.Errorf("dialogue document has no lines")
	}
	return &doc, nil
}

// Fetch downloads and decodes a document. Non-2xx responses are errors.
func Fetch(ctx context.Context, client *http.Client, url string) (*Document, error) {
	data, err := Get(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Get performs a GET and returns the body of a 2xx response.
func Get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}

// Avatar looks up the avatar of a speaker.
func (d *Document) Avatar(name string) (Avatar, bool) {
	for _, a := range d.Avatars {
		if a.Name == name {
			return a, true
		}
	}
	return Avatar{}, false
}

// EmojiNames returns the set of known emoji tags.
func (d *Document) EmojiNames() map[string]struct{} {
	names := make(map[string]struct{}, len(d.Emojis))
	for _, e := range d.Emojis {
		names[e.Name] = struct{}{}
	}
	return names
}
