package ogimage

import (
	"fmt"
	"strings"
)

// palette is the background, foreground and dot colors of a theme.
type palette struct {
	background string
	foreground string
	radial     string
}

var (
	lightPalette = palette{background: "white", foreground: "black", radial: "lightgray"}
	darkPalette  = palette{background: "black", foreground: "white", radial: "dimgray"}
)

// paletteFor returns the dark palette for ThemeDark and the light palette for
// anything else, including the empty string and unknown names.
func paletteFor(theme string) palette {
	if theme == ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// buildFontFaceCSS generates the three @font-face rules with data URI sources.
func buildFontFaceCSS(f *Fonts) string {
	if f == nil {
		f = &Fonts{}
	}

	var buf strings.Builder
	writeFontFace(&buf, "Inter", "normal", f.Regular)
	writeFontFace(&buf, "Inter", "bold", f.Bold)
	writeFontFace(&buf, "Vera", "normal", f.Mono)
	return buf.String()
}

func writeFontFace(buf *strings.Builder, family, weight, payload string) {
	fmt.Fprintf(buf, `
@font-face {
  font-family: '%s';
  font-style: normal;
  font-weight: %s;
  src: url(data:font/woff2;charset=utf-8;base64,%s) format('woff2');
}
`, family, weight, payload)
}

// buildCSS generates the document stylesheet.
// fontSize is untrusted and goes through sanitize before interpolation.
func buildCSS(theme, fontSize string, fonts *Fonts, sanitize Sanitizer) string {
	p := paletteFor(theme)

	var buf strings.Builder
	buf.WriteString(buildFontFaceCSS(fonts))

	fmt.Fprintf(&buf, `
body {
  background: %[1]s;
  background-image: radial-gradient(circle at 25px 25px, %[2]s 2%%, transparent 0%%), radial-gradient(circle at 75px 75px, %[2]s 2%%, transparent 0%%);
  background-size: 100px 100px;
  height: 100vh;
  display: flex;
  text-align: center;
  align-items: center;
  justify-content: center;
}
`, p.background, p.radial)

	buf.WriteString(staticCSS)

	fmt.Fprintf(&buf, `
.title {
  font-family: 'Inter', sans-serif;
  font-size: %s;
  font-style: normal;
  font-weight: bold;
  color: %s;
}
`, sanitize.Sanitize(fontSize), p.foreground)

	return buf.String()
}

// staticCSS holds the rules that depend on neither theme nor font size.
const staticCSS = `
code {
  color: #D400FF;
  font-family: 'Vera';
  white-space: pre-wrap;
  letter-spacing: -5px;
}

code:before, code:after {
  content: '` + "`" + `';
}

pre code:before, pre code:after {
  content: none;
}

.logo-wrapper {
  display: flex;
  align-items: center;
  align-content: center;
  justify-content: center;
  justify-items: center;
}

.logo {
  object-fit: cover;
  margin: 0 26px;
  border-radius: 50%;
  border: 4px solid #1498D5;
}

.plus {
  color: #BBB;
  font-family: Times New Roman, Verdana;
  font-size: 100px;
}

.emoji {
  height: 1em;
  width: 1em;
  margin: 0 .05em 0 .1em;
  vertical-align: -0.1em;
}

.display-full {
  width: 100vw;
  height: 100vh;
}

.flex {
  display: flex;
  justify-content: center;
  align-items: center;
}

.flex-row {
  flex-direction: row;
}

.flex-column {
  flex-direction: column;
}

.footer-logo {
  top: 4em;
  right: 4em;
  position: absolute;
}
`
