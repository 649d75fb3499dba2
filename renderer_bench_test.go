//go:build bench

package ogimage

import (
	"strings"
	"testing"
)

// BenchmarkRenderer_Render benchmarks document assembly.
func BenchmarkRenderer_Render(b *testing.B) {
	fonts := &Fonts{
		Regular: strings.Repeat("A", 64<<10),
		Bold:    strings.Repeat("B", 64<<10),
		Mono:    strings.Repeat("C", 32<<10),
	}
	r := NewRenderer(fonts)

	requests := []struct {
		name string
		req  RenderRequest
	}{
		{"plain", RenderRequest{Text: "Hello, world", FontSize: "96px"}},
		{"emoji", RenderRequest{Text: "Ship it \U0001F680\U0001F389", FontSize: "96px"}},
		{"markdown", RenderRequest{Text: "**Launch** `v2` with ~~bugs~~ :tada:", Markdown: true, FontSize: "96px"}},
		{"images", RenderRequest{
			Text:   "Team",
			Images: []string{"https://a/1.png", "https://a/2.png", "https://a/3.png", "https://a/4.png"},
			Widths: []string{"200", "200"},
		}},
	}

	for _, rq := range requests {
		b.Run(rq.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := r.Render(rq.req); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkBuildCSS benchmarks stylesheet generation.
func BenchmarkBuildCSS(b *testing.B) {
	fonts := &Fonts{Regular: "AA==", Bold: "AQ==", Mono: "Ag=="}

	for _, theme := range []string{ThemeLight, ThemeDark} {
		b.Run(theme, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = buildCSS(theme, "96px", fonts, HTMLEscaper{})
			}
		})
	}
}
