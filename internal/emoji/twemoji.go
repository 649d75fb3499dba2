// Package emoji replaces emoji glyphs in HTML fragments with Twemoji images,
// so cards render the same emoji artwork regardless of the fonts installed
// where the screenshot is taken.
package emoji

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
)

// DefaultBaseURL serves the Twemoji SVG set.
const DefaultBaseURL = "https://cdn.jsdelivr.net/gh/jdecked/twemoji@latest/assets/svg/"

const (
	zeroWidthJoiner   = '\u200d'
	variationSelector = '\ufe0f'
	keycapCombiner    = '\u20e3'
)

// Twemoji rewrites emoji graphemes into <img class="emoji"> references.
type Twemoji struct {
	baseURL string
	ext     string
}

// NewTwemoji creates a Twemoji emitting {baseURL}{codepoints}.svg sources.
func NewTwemoji(baseURL string) *Twemoji {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Twemoji{baseURL: baseURL, ext: ".svg"}
}

// Emojify replaces every emoji outside of tags in fragment.
// Tag markup, attribute values and entities are copied unchanged.
func (t *Twemoji) Emojify(fragment string) string {
	var buf strings.Builder
	buf.Grow(len(fragment))

	for len(fragment) > 0 {
		start := strings.IndexByte(fragment, '<')
		if start < 0 {
			t.emojifyText(&buf, fragment)
			break
		}
		t.emojifyText(&buf, fragment[:start])

		end := strings.IndexByte(fragment[start:], '>')
		if end < 0 {
			// Unterminated tag: copy the rest untouched.
			buf.WriteString(fragment[start:])
			break
		}
		buf.WriteString(fragment[start : start+end+1])
		fragment = fragment[start+end+1:]
	}

	return buf.String()
}

// emojifyText handles a run of character data between tags.
func (t *Twemoji) emojifyText(buf *strings.Builder, text string) {
	if isASCII(text) {
		buf.WriteString(text)
		return
	}

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if !IsEmoji(cluster) {
			buf.WriteString(cluster)
			continue
		}
		fmt.Fprintf(buf, `<img class="emoji" draggable="false" alt="%s" src="%s%s%s"/>`,
			html.EscapeString(cluster), t.baseURL, CodePoints(cluster), t.ext)
	}
}

// CodePoints returns the Twemoji file name of a grapheme: lowercase hex code
// points joined by "-". U+FE0F is dropped unless the sequence contains a
// zero width joiner, matching the Twemoji asset naming.
func CodePoints(cluster string) string {
	keepVS := strings.ContainsRune(cluster, zeroWidthJoiner)

	parts := make([]string, 0, 4)
	for _, r := range cluster {
		if r == variationSelector && !keepVS {
			continue
		}
		parts = append(parts, fmt.Sprintf("%x", r))
	}
	return strings.Join(parts, "-")
}

// IsEmoji reports whether a grapheme cluster is a Unicode emoji that
// Twemoji ships artwork for. Symbols outside the emoji set (✓, ★, ⌘) stay
// text. Symbols that default to text presentation (©, ®, ™, arrows) only
// count when followed by U+FE0F.
func IsEmoji(cluster string) bool {
	if cluster == "" || isASCII(cluster) {
		return false
	}

	first, _ := utf8.DecodeRuneInString(cluster)
	hasVS := strings.ContainsRune(cluster, variationSelector)

	if isKeycap(first) {
		return strings.ContainsRune(cluster, keycapCombiner)
	}
	if isTextDefault(first) && !hasVS {
		return false
	}
	if known(cluster) {
		return true
	}
	// Unqualified form of an emoji listed with U+FE0F, such as a bare ❤.
	return !hasVS && known(withVariationSelector(cluster, first))
}

// known looks a sequence up in the Unicode emoji list.
func known(seq string) bool {
	_, err := gomoji.GetInfo(seq)
	return err == nil
}

func withVariationSelector(cluster string, first rune) string {
	n := utf8.RuneLen(first)
	return cluster[:n] + string(variationSelector) + cluster[n:]
}

func isKeycap(r rune) bool {
	return r == '#' || r == '*' || (r >= '0' && r <= '9')
}

// isTextDefault covers emoji whose default presentation is text.
func isTextDefault(r rune) bool {
	switch {
	case r == 0x00A9, r == 0x00AE, r == 0x203C, r == 0x2049, r == 0x2122, r == 0x2139:
		return true
	case r >= 0x2194 && r <= 0x2199, r == 0x21A9, r == 0x21AA:
		return true
	case r == 0x2934, r == 0x2935, r == 0x25AA, r == 0x25AB, r == 0x25B6, r == 0x25C0:
		return true
	case r >= 0x25FB && r <= 0x25FE:
		return true
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
