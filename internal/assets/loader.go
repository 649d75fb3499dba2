package assets

// FontExt is the file extension of every font file.
const FontExt = ".woff2"

// FontLoader defines the contract for reading font files by name.
type FontLoader interface {
	// LoadFont returns the raw bytes of a font by name (without extension).
	// Returns ErrFontNotFound if the font doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadFont(name string) ([]byte, error)
}
