package assets

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestValidateFontName - Face name allowlist
// ---------------------------------------------------------------------------

func TestValidateFontName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "regular face", input: "Inter-Regular"},
		{name: "bold face", input: "Inter-Bold"},
		{name: "underscore and digits", input: "Font_2024"},

		{name: "empty name", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "fonts/Inter", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: "fonts\\Inter", wantErr: ErrInvalidAssetName},
		{name: "parent traversal", input: "../Inter", wantErr: ErrInvalidAssetName},
		{name: "extension supplied", input: "Inter.woff2", wantErr: ErrInvalidAssetName},
		{name: "NUL byte", input: "Inter\x00", wantErr: ErrInvalidAssetName},
		{name: "space", input: "Inter Bold", wantErr: ErrInvalidAssetName},
		{name: "non-ASCII", input: "Intér", wantErr: ErrInvalidAssetName},
		{name: "too long", input: strings.Repeat("a", MaxFontNameLength+1), wantErr: ErrInvalidAssetName},
		{name: "at length limit", input: strings.Repeat("a", MaxFontNameLength)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateFontName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFontName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFontName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFontName_MessageNamesInput(t *testing.T) {
	t.Parallel()

	err := ValidateFontName("../evil")
	if err == nil {
		t.Fatal("expected error for traversal name")
	}
	if !strings.Contains(err.Error(), "../evil") {
		t.Errorf("error %q should mention the rejected name", err.Error())
	}
}
