package assets

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeFont creates dir/name.woff2 with content.
func writeFont(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+FontExt), content, 0o644); err != nil {
		t.Fatalf("failed to write font %s: %v", name, err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()

		loader, err := NewFilesystemLoader(tmpDir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if loader.BasePath() == "" {
			t.Error("BasePath() should not be empty")
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeFont(t, tmpDir, "Inter-Regular", []byte("x"))

		_, err := NewFilesystemLoader(filepath.Join(tmpDir, "Inter-Regular"+FontExt))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_LoadFont(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	payload := []byte("wOF2\x00\x01fake")
	writeFont(t, tmpDir, "Inter-Regular", payload)
	writeFont(t, tmpDir, "Empty", nil)

	loader, err := NewFilesystemLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	tests := []struct {
		name    string
		font    string
		want    []byte
		wantErr error
	}{
		{name: "existing font", font: "Inter-Regular", want: payload},
		{name: "missing font", font: "Inter-Bold", wantErr: ErrFontNotFound},
		{name: "empty font file", font: "Empty", wantErr: ErrEmptyFont},
		{name: "traversal name", font: "../etc/passwd", wantErr: ErrInvalidAssetName},
		{name: "empty name", font: "", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadFont(tt.font)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadFont(%q) error = %v, want %v", tt.font, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFont(%q) unexpected error: %v", tt.font, err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("LoadFont(%q) = %q, want %q", tt.font, got, tt.want)
			}
		})
	}
}

func TestFilesystemLoader_PathContainment(t *testing.T) {
	t.Parallel()

	t.Run("rejects symlink escape attempt", func(t *testing.T) {
		t.Parallel()

		fontDir := t.TempDir()
		secretDir := t.TempDir()
		secretFile := filepath.Join(secretDir, "secret"+FontExt)
		if err := os.WriteFile(secretFile, []byte("secret content"), 0o644); err != nil {
			t.Fatalf("failed to write secret file: %v", err)
		}

		if err := os.Symlink(secretFile, filepath.Join(fontDir, "evil"+FontExt)); err != nil {
			t.Skipf("symlink creation not supported: %v", err)
		}

		loader, err := NewFilesystemLoader(fontDir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}

		_, err = loader.LoadFont("evil")
		if !errors.Is(err, ErrPathTraversal) {
			t.Errorf("LoadFont() with symlink escape error = %v, want ErrPathTraversal", err)
		}
	})
}
