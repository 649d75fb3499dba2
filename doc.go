// Package ogimage renders social-media preview images (Open Graph cards)
// from a title, a theme, a font size and a row of avatar or logo images.
//
// # Quick Start
//
// Load the fonts once, build a generator, and render:
//
//	gen, err := ogimage.NewGenerator(ogimage.WithFontDir("./fonts"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	result, err := gen.Generate(ctx, ogimage.Input{
//	    Request: ogimage.RenderRequest{
//	        Text:     "**Hello** world",
//	        Theme:    ogimage.ThemeDark,
//	        Markdown: true,
//	        FontSize: "96px",
//	        Images:   []string{"https://example.com/avatar.png"},
//	    },
//	    FileType: ogimage.FileTypePNG,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("card.png", result.Image, 0644)
//
// # Rendering Pipeline
//
// Generation follows these stages:
//
//  1. CSS built from the theme and font size, with the three fonts
//     embedded as base64 data URIs
//  2. Image row: one circular image per entry, "plus" dividers between them
//  3. Title: escaped plain text, or Markdown rendered via Goldmark
//  4. Emoji glyphs rewritten to Twemoji image references
//  5. Screenshot via headless Chrome (go-rod), unless FileType is html
//
// Stages 1 to 4 are performed by Renderer, a pure and concurrency-safe
// HTML builder that can be used on its own:
//
//	r := ogimage.NewRenderer(fonts)
//	html, err := r.Render(ogimage.RenderRequest{Text: "Hello"})
//
// # Collaborators
//
// The Renderer delegates escaping, Markdown conversion and emoji substitution
// to three small interfaces (Sanitizer, MarkupRenderer, Emojifier). Replace
// any of them with the matching option:
//
//	r := ogimage.NewRenderer(fonts,
//	    ogimage.WithEmojifier(ogimage.EmojifierFunc(func(s string) string { return s })),
//	)
//
// Generators accept the same options through WithRendererOptions.
//
// # Concurrency
//
// A Generator owns one browser and serializes nothing itself; share a
// GeneratorPool across goroutines instead. The pool creates generators
// lazily, reads a font directory once, and hands out at most Size
// generators at a time:
//
//	pool, err := ogimage.NewGeneratorPool(ogimage.ResolvePoolSize(0), ogimage.WithFontDir("./fonts"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	gen, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(gen)
//
// # Browser Requirements
//
// Image output requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package ogimage
