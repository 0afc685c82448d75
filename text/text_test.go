package text

import (
	"reflect"
	"testing"
)

func TestStringWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"cjk wide", "你好", 4},
		{"mixed", "a你b", 4},
		{"combining accent", "é", 1},
		{"emoji", "🎉", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StringWidth(tt.input); got != tt.want {
				t.Errorf("StringWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestClusters(t *testing.T) {
	got := Clusters("a你é")
	want := []Cluster{
		{Text: "a", Width: 1},
		{Text: "你", Width: 2},
		{Text: "é", Width: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Clusters = %+v, want %+v", got, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		tail  string
		want  string
	}{
		{"fits", "hello", 10, "…", "hello"},
		{"exact", "hello", 5, "…", "hello"},
		{"cut ascii", "hello", 4, "…", "hel…"},
		{"no tail", "hello", 3, "", "hel"},
		{"wide not split", "你好吗", 5, "", "你好"},
		{"wide with tail", "你好吗", 5, "…", "你好…"},
		{"zero width", "hello", 0, "…", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.width, tt.tail); got != tt.want {
				t.Errorf("Truncate(%q, %d, %q) = %q, want %q", tt.input, tt.width, tt.tail, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q, want %q", got, "ab   ")
	}
	if got := PadRight("hello", 3); got != "hello" {
		t.Errorf("PadRight should not truncate, got %q", got)
	}
	// Wide text pads by display width
	if got := PadRight("你", 4); got != "你  " {
		t.Errorf("PadRight wide = %q, want %q", got, "你  ")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{"fits", "hello world", 20, []string{"hello world"}},
		{"word boundary", "hello world", 6, []string{"hello", "world"}},
		{"long word split", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"preserves newlines", "a\nb", 10, []string{"a", "b"}},
		{"wide never splits", "你好吗", 3, []string{"你", "好", "吗"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.input, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}
