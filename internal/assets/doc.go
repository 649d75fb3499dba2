// Package assets loads the font files embedded into rendered cards.
//
// Fonts are read from a directory on disk, one woff2 file per face:
//
//	{basePath}/
//	├── Inter-Regular.woff2
//	├── Inter-Bold.woff2
//	└── Vera-Mono.woff2
//
// # Security
//
// Font names are validated before they are turned into paths, and
// FilesystemLoader resolves symlinks and verifies every path stays within
// basePath, so a configured name can never read outside the font directory.
package assets
