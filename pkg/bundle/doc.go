// Package bundle packages a directory tree into a reproducible,
// content-identified archive.
//
// # Overview
//
// Building a package runs four stages sequentially over one file list:
//
//	.codepack.toml (optional)
//	         ↓
//	    LoadPolicy (defaults merged with the directory-local file)
//	         ↓
//	    SelectFiles (exclude/include rules + size safety limit)
//	         ↓
//	    HashFiles (SHA-1 over file contents in traversal order)
//	         ↓
//	    Pack (gzip'd tar of the selected files)
//
// The resulting Package carries the archive bytes and an identifier of the
// form {user}_{basename}_{YYYYMMDD}_{hash suffix}. Identical trees packaged
// with identical policies produce identical hashes, so re-packaging
// unchanged content by the same user on the same day yields the same ID.
//
// # Selection Policy
//
// A directory may carry a .codepack.toml file overriding the defaults:
//
//	exclude = ["__pycache__", "._*", "core"]
//	include = ["my_large_file.txt"]
//	max_file_size = 100000
//
// Keys present in the file replace the corresponding default wholesale;
// absent keys keep their defaults. Files matched by an include rule are
// always packaged, bypassing both exclusion and the size limit. Files
// exceeding max_file_size that match neither list abort the build with a
// FILE_TOO_LARGE error so that oversized artifacts never slip into a
// package unnoticed.
//
// # Quick Start
//
//	pkg, err := bundle.Build(".")
//	if err != nil {
//	    return err
//	}
//	// pkg.ID ~ "alice_myproj_20240305_1a2b3c4d"
//	os.WriteFile(pkg.ID+".tar.gz", pkg.Contents, 0o644)
//
// Extraction is the inverse:
//
//	err = bundle.Unpack(pkg.Contents, "/tmp/myproj")
//
// Unpack refuses archive entries that would escape the destination
// directory. Archives produced by third-party tools that rely on ../
// entries were tolerated by earlier tooling and are now rejected with a
// PATH_TRAVERSAL error.
//
// # Concurrency
//
// All functions are pure with respect to process state apart from reading
// the filesystem and the environment-derived username. Packaging different
// directories concurrently is safe; there is no shared mutable state.
package bundle
