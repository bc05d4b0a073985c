//go:generate sh -c "pnpm install && pnpm build"

// Package frontend provides the embedded canvas frontend assets.
//
// The dist directory is populated by the pnpm build; the checked-in
// index.html is a placeholder so the embed works on a fresh clone.
package frontend

import "embed"

// Files contains the embedded web frontend.
//
//go:embed dist/*
var Files embed.FS
