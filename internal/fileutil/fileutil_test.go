package fileutil_test

// Notes:
// - WriteTempFile write and close error branches are not exercised; triggering
//   disk failures is platform-specific.
// - WriteFileAtomic is checked through its observable result: final content,
//   created parents, and no leftover temp files next to the target.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanu-phoo/og-image/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "html", extension: "html"},
		{name: "png", extension: "png"},
		{name: "empty extension", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash", extension: "../etc/passwd", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", extension: "..\\windows", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", extension: "html\x00exe", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temporary document for the browser
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	content := "<!DOCTYPE html><html><body>card</body></html>"

	path, cleanup, err := fileutil.WriteTempFile(content, "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if !strings.HasPrefix(filepath.Base(path), "ogimage-") {
		t.Errorf("path %q does not start with ogimage-", path)
	}
	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path %q does not end with .html", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read temp file: %v", err)
	}
	if string(data) != content {
		t.Errorf("file content = %q, want %q", data, content)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("cleanup did not remove %s", path)
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, cleanup, err := fileutil.WriteTempFile("x", "../html")
	if !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("WriteTempFile() error = %v, want ErrExtensionPathTraversal", err)
	}
	if cleanup != nil {
		t.Error("cleanup should be nil on error")
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Rendered output files
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates file and parents", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out", "cards", "hello.png")
		want := []byte("\x89PNG fake")

		if err := fileutil.WriteFileAtomic(path, want); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if string(got) != string(want) {
			t.Errorf("content = %q, want %q", got, want)
		}
	})

	t.Run("replaces existing file without leftovers", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "card.html")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fileutil.WriteFileAtomic(path, []byte("new")); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want 1 (no temp files left)", len(entries))
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		if err := fileutil.WriteFileAtomic("", []byte("x")); !errors.Is(err, fileutil.ErrEmptyPath) {
			t.Errorf("WriteFileAtomic(\"\") error = %v, want ErrEmptyPath", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFileExists - Regular file detection
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "og-image.yaml")
	if err := os.WriteFile(testFile, []byte("server: {}"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file", testFile, true},
		{"directory", tempDir, false},
		{"nonexistent path", filepath.Join(tempDir, "missing"), false},
		{"empty path", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - Config name vs path
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"og-image", false},
		{"./og-image.yaml", true},
		{"/etc/og-image.yaml", true},
		{"configs\\prod.yaml", true},
		{"prod", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
