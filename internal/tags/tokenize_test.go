package tags

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseTopicTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"comma list", "Array, Hash Table", []string{"Array", "Hash Table"}},
		{"semicolons", "array;string ; greedy", []string{"Array", "String", "Greedy"}},
		{"count markers", "Array, 2+, Dynamic  Programming 3+", []string{"Array", "Dynamic Programming"}},
		{"collapse whitespace", "  hash\t  table  ", []string{"Hash table"}},
		{"empty tokens", ",,;", nil},
		{"empty", "", nil},
		{"only first rune upper", "depth-First search", []string{"Depth-First search"}},
		{"marker inside word kept", "C++", []string{"C++"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTopicTags(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTopicTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugFromURL(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr error
	}{
		{"https://leetcode.com/problems/two-sum/", "two-sum", nil},
		{"https://LeetCode.com/problems/Two-Sum/description/?tab=1", "two-sum", nil},
		{"leetcode.com/problems/3sum#top", "3sum", nil},
		{"https://leetcode.com/contest/weekly-1/", "", ErrNoSlug},
		{"", "", ErrNoSlug},
	}

	for _, tt := range tests {
		got, err := SlugFromURL(tt.url)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("SlugFromURL(%q) error = %v, want %v", tt.url, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("SlugFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
