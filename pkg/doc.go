// Package pkg provides the core libraries for codepack packaging and storage.
//
// # Overview
//
// Codepack bundles directory trees into reproducible tar.gz packages with
// content-derived identities, and moves small values and packages through a
// remote object store. The pkg directory is organized into three main areas:
//
//  1. [bundle] - Domain logic (file selection, hashing, archiving, identity)
//  2. [store] / [keyval] - Storage (backends, namespacing, key-value layer)
//  3. [errors] / [pattern] / [observability] - Supporting libraries
//
// # Architecture
//
// The typical data flow through codepack:
//
//	Directory tree + .codepack.toml
//	         ↓
//	    [pattern] package (compile include/exclude rules)
//	         ↓
//	    [bundle] package (select → hash → pack → identity)
//	         ↓
//	    [store] package (push to file/redis/mongo/http backend)
//
// # Quick Start
//
// Build a package and push it to a store:
//
//	import (
//	    "context"
//	    "github.com/epfml/codepack/pkg/bundle"
//	    "github.com/epfml/codepack/pkg/store"
//	)
//
//	// 1. Build the package
//	pkg, _ := bundle.Build("./myproject")
//
//	// 2. Open a store backend
//	st, _ := store.Open(context.Background(), store.ConfigFromEnv())
//	defer st.Close()
//
//	// 3. Push the archive
//	_ = st.Put(context.Background(), "alice/packages/"+pkg.ID, pkg.Contents, 0)
//
// # Main Packages
//
// [bundle] - Directory packaging. Loads the .codepack.toml policy, selects
// files with gitignore-style rules, hashes contents in deterministic order,
// writes a reproducible tar.gz, and derives the package identity
// {user}_{basename}_{date}_{hash suffix}.
//
// [pattern] - Gitignore-style rule sets compiled onto doublestar globs.
// Supports bare names, anchored patterns, directory-only rules, and
// last-match-wins negation.
//
// [store] - Object store backends behind a single Store interface: memory
// (testing), file (local), redis, mongo, and http (client for the codepack
// object server). ScopedStore namespaces keys under a prefix.
//
// [keyval] - Thin key-value layer over a Store: JSON-encoded values under
// {user}/{key} with validation and optional TTLs.
//
// [errors] - Structured errors with stable codes (CONFIG_INVALID,
// FILE_TOO_LARGE, IO_ERROR, PATH_TRAVERSAL, NOT_FOUND, STORE_ERROR,
// INVALID_INPUT) plus key and user validation.
//
// [observability] - Optional hooks for store operations and package builds,
// registered at startup without coupling the libraries to a metrics backend.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/bundle/...    # Specific package
//
// [bundle]: https://pkg.go.dev/github.com/epfml/codepack/pkg/bundle
// [pattern]: https://pkg.go.dev/github.com/epfml/codepack/pkg/pattern
// [store]: https://pkg.go.dev/github.com/epfml/codepack/pkg/store
// [keyval]: https://pkg.go.dev/github.com/epfml/codepack/pkg/keyval
// [errors]: https://pkg.go.dev/github.com/epfml/codepack/pkg/errors
// [observability]: https://pkg.go.dev/github.com/epfml/codepack/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/epfml/codepack/pkg/buildinfo
package pkg
