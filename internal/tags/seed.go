package tags

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

//go:embed data/seed_tags.json
var bundledSeed []byte

// ErrUnknownShape is returned for a seed document that is neither an object nor an array
var ErrUnknownShape = errors.New("unrecognized seed shape")

// Index maps a lowercase slug to its ordered topic tags
type Index map[string][]string

// Shape identifies which of the two seed document layouts was found
type Shape int

const (
	// ShapeMapping is {"slug": ["Tag", ...], ...}
	ShapeMapping Shape = iota + 1
	// ShapeRows is [{"Question_Link"|"Slug": ..., "Topic_tags": [...] | "a, b"}, ...]
	ShapeRows
)

func (s Shape) String() string {
	switch s {
	case ShapeMapping:
		return "mapping"
	case ShapeRows:
		return "rows"
	default:
		return "unknown"
	}
}

// Seed is a decoded seed document before normalization
type Seed struct {
	Shape   Shape
	Mapping map[string][]string
	Rows    []SeedRow
}

// SeedRow is one row of the rows layout. TopicTags is either an array or a string
type SeedRow struct {
	QuestionLink string          `json:"Question_Link"`
	Slug         string          `json:"Slug"`
	TopicTags    json.RawMessage `json:"Topic_tags"`
}

// DecodeSeed detects the document layout and decodes it
func DecodeSeed(data []byte) (*Seed, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrUnknownShape
	}

	switch trimmed[0] {
	case '{':
		var m map[string][]string
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, fmt.Errorf("failed to decode seed mapping: %w", err)
		}
		return &Seed{Shape: ShapeMapping, Mapping: m}, nil
	case '[':
		var rows []SeedRow
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("failed to decode seed rows: %w", err)
		}
		return &Seed{Shape: ShapeRows, Rows: rows}, nil
	default:
		return nil, ErrUnknownShape
	}
}

// Index normalizes the seed into slug to tags
func (s *Seed) Index() Index {
	out := make(Index)

	switch s.Shape {
	case ShapeMapping:
		for slug, tags := range s.Mapping {
			out[strings.ToLower(slug)] = tags
		}
	case ShapeRows:
		for _, row := range s.Rows {
			slug := row.slug()
			if slug == "" {
				continue
			}
			if tags := row.tags(); len(tags) > 0 {
				out[slug] = tags
			}
		}
	}

	return out
}

func (r SeedRow) slug() string {
	if slug, err := SlugFromURL(r.QuestionLink); err == nil {
		return slug
	}
	return strings.ToLower(strings.TrimSpace(r.Slug))
}

func (r SeedRow) tags() []string {
	raw := bytes.TrimSpace(r.TopicTags)
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case '[':
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil
		}
		var out []string
		for _, t := range list {
			if t != "" {
				out = append(out, t)
			}
		}
		return out
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return ParseTopicTags(s)
	default:
		return nil
	}
}

// LoadSeed reads the seed at path, or the bundled dataset when path is empty
func LoadSeed(path string) (Index, error) {
	data := bundledSeed
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed: %w", err)
		}
	}

	seed, err := DecodeSeed(data)
	if err != nil {
		return nil, err
	}
	return seed.Index(), nil
}
