// Package text measures and segments terminal text. All width
// arithmetic in layout and painting goes through here so that grapheme
// clusters and East Asian wide glyphs are counted once, consistently.
package text

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cluster is one grapheme cluster with its display width in cells.
// Width is 0 for zero-width clusters, 1 for narrow, 2 for wide glyphs.
type Cluster struct {
	Text  string
	Width int
}

// StringWidth returns the display width of s in terminal cells
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// RuneWidth returns the display width of a single rune
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// Clusters splits s into grapheme clusters with their widths
func Clusters(s string) []Cluster {
	if s == "" {
		return nil
	}
	out := make([]Cluster, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, Cluster{Text: g.Str(), Width: g.Width()})
	}
	return out
}

// Truncate cuts s to at most width cells, appending tail when anything
// was removed. A wide glyph that would straddle the cut is dropped
// whole.
func Truncate(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(s) <= width {
		return s
	}

	tailWidth := StringWidth(tail)
	budget := width - tailWidth
	if budget < 0 {
		budget = 0
	}

	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > budget {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	b.WriteString(tail)
	return b.String()
}

// PadRight extends s with spaces to exactly width cells, truncating
// first if s is too wide.
func PadRight(s string, width int) string {
	w := StringWidth(s)
	if w > width {
		s = Truncate(s, width, "")
		w = StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// Wrap breaks s into lines of at most width cells. Breaks prefer word
// boundaries; a word longer than the width is split between clusters,
// never inside one, so a wide glyph always lands whole on one line.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, wrapLine(para, width)...)
	}
	return lines
}

func wrapLine(s string, width int) []string {
	if StringWidth(s) <= width {
		return []string{s}
	}

	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0

	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curWidth = 0
	}

	for _, word := range words {
		ww := StringWidth(word)

		if ww > width {
			// Oversized word: hard-split between clusters
			if curWidth > 0 {
				flush()
			}
			pieces := splitClusters(word, width)
			for _, piece := range pieces[:len(pieces)-1] {
				lines = append(lines, piece)
			}
			// The final piece may leave room for following words
			last := pieces[len(pieces)-1]
			if pw := StringWidth(last); pw == width {
				lines = append(lines, last)
			} else {
				cur.WriteString(last)
				curWidth = pw
			}
			continue
		}

		sep := 0
		if curWidth > 0 {
			sep = 1
		}
		if curWidth+sep+ww > width {
			flush()
			sep = 0
		}
		if sep == 1 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += ww
	}
	if curWidth > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// splitClusters cuts s into chunks of at most width cells along
// cluster boundaries
func splitClusters(s string, width int) []string {
	var out []string
	var b strings.Builder
	used := 0

	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width && used > 0 {
			out = append(out, b.String())
			b.Reset()
			used = 0
		}
		b.WriteString(g.Str())
		used += w
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}
