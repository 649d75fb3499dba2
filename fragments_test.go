package ogimage

// Notes:
// - buildImage: escaping of src, width and height, default dimension
// - buildDivider: none before the first image
// - buildImageRow: ordering, n-1 dividers, short dimension arrays

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestBuildImage - Image fragment
// ---------------------------------------------------------------------------

func TestBuildImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		width  string
		height string
		want   string
	}{
		{
			name:   "explicit dimensions",
			src:    "https://a/x.png",
			width:  "100",
			height: "120",
			want:   `<img class="logo" alt="Generated Image" src="https://a/x.png" width="100" height="120" />`,
		},
		{
			name: "missing dimensions use default",
			src:  "https://a/x.png",
			want: `<img class="logo" alt="Generated Image" src="https://a/x.png" width="400" height="400" />`,
		},
		{
			name:   "attribute injection is escaped",
			src:    `x" onerror="alert(1)`,
			width:  `1"><script>`,
			height: `'&'`,
			want:   `<img class="logo" alt="Generated Image" src="x&#34; onerror=&#34;alert(1)" width="1&#34;&gt;&lt;script&gt;" height="&#39;&amp;&#39;" />`,
		},
		{
			name:   "query string ampersand",
			src:    "https://a/x.png?a=1&b=2",
			width:  "50",
			height: "50",
			want:   `<img class="logo" alt="Generated Image" src="https://a/x.png?a=1&amp;b=2" width="50" height="50" />`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildImage(tt.src, tt.width, tt.height, HTMLEscaper{})
			if got != tt.want {
				t.Errorf("buildImage() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildDivider - Plus divider
// ---------------------------------------------------------------------------

func TestBuildDivider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		index int
		want  string
	}{
		{0, ""},
		{1, `<div class="plus">X</div>`},
		{7, `<div class="plus">X</div>`},
	}

	for _, tt := range tests {
		if got := buildDivider(tt.index); got != tt.want {
			t.Errorf("buildDivider(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestBuildImageRow - Layout of the image row
// ---------------------------------------------------------------------------

func TestBuildImageRow(t *testing.T) {
	t.Parallel()

	t.Run("no images", func(t *testing.T) {
		t.Parallel()

		if got := buildImageRow(RenderRequest{}, HTMLEscaper{}); got != "" {
			t.Errorf("buildImageRow() = %q, want empty", got)
		}
	})

	t.Run("three images get two dividers in between", func(t *testing.T) {
		t.Parallel()

		req := RenderRequest{Images: []string{"https://a/1.png", "https://a/2.png", "https://a/3.png"}}
		got := buildImageRow(req, HTMLEscaper{})

		if n := strings.Count(got, dividerHTML); n != 2 {
			t.Fatalf("got %d dividers, want 2", n)
		}
		if strings.HasPrefix(got, dividerHTML) {
			t.Error("row should not start with a divider")
		}
		if strings.HasSuffix(got, dividerHTML) {
			t.Error("row should not end with a divider")
		}

		i1 := strings.Index(got, "1.png")
		i2 := strings.Index(got, "2.png")
		i3 := strings.Index(got, "3.png")
		if !(i1 < i2 && i2 < i3) {
			t.Errorf("images out of order: %d, %d, %d", i1, i2, i3)
		}

		parts := strings.Split(got, dividerHTML)
		for i, part := range parts {
			if strings.Count(part, "<img") != 1 {
				t.Errorf("segment %d has %d images, want 1", i, strings.Count(part, "<img"))
			}
		}
	})

	t.Run("short dimension arrays fall back to default", func(t *testing.T) {
		t.Parallel()

		req := RenderRequest{
			Images:  []string{"https://a/1.png", "https://a/2.png"},
			Widths:  []string{"100"},
			Heights: nil,
		}
		got := buildImageRow(req, HTMLEscaper{})

		want := `<img class="logo" alt="Generated Image" src="https://a/1.png" width="100" height="400" />` +
			dividerHTML +
			`<img class="logo" alt="Generated Image" src="https://a/2.png" width="400" height="400" />`
		if got != want {
			t.Errorf("buildImageRow() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("empty dimension entry uses default", func(t *testing.T) {
		t.Parallel()

		req := RenderRequest{Images: []string{"https://a/1.png"}, Widths: []string{""}, Heights: []string{"80"}}
		got := buildImageRow(req, HTMLEscaper{})

		if !strings.Contains(got, `width="400" height="80"`) {
			t.Errorf("buildImageRow() = %q, want width 400 and height 80", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestDimensionAt - Index-aligned defaults
// ---------------------------------------------------------------------------

func TestDimensionAt(t *testing.T) {
	t.Parallel()

	dims := []string{"10", "", "30"}

	tests := []struct {
		i    int
		want string
	}{
		{0, "10"},
		{1, DefaultImageDimension},
		{2, "30"},
		{3, DefaultImageDimension},
	}

	for _, tt := range tests {
		if got := dimensionAt(dims, tt.i); got != tt.want {
			t.Errorf("dimensionAt(%v, %d) = %q, want %q", dims, tt.i, got, tt.want)
		}
	}
}
