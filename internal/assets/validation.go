package assets

import "fmt"

// MaxFontNameLength bounds font face names such as "Inter-Regular".
const MaxFontNameLength = 64

// ValidateFontName accepts face names made of ASCII letters, digits, '-' and
// '_'. The loader appends FontExt itself, so separators, dots and control
// bytes never reach the filesystem.
func ValidateFontName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxFontNameLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInvalidAssetName, len(name), MaxFontNameLength)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
