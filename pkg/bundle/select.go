package bundle

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/epfml/codepack/pkg/errors"
	"github.com/epfml/codepack/pkg/pattern"
)

// SelectFiles walks the tree rooted at root and returns the slash-relative
// paths of every file the policy selects, in walk order. The walk is
// lexical, so the same tree and policy always produce the same ordered
// list, which the content hash depends on.
//
// Per file:
//  1. Include match → selected, bypassing exclusion and the size limit.
//  2. Exclude match → skipped.
//  3. Size above policy.MaxFileSize → the walk aborts with FILE_TOO_LARGE
//     naming the file.
//  4. Otherwise → selected.
//
// Only leaf files are returned; directories are implicit in the paths.
// Symlinks to regular files are selected and followed when read; symlinks
// to directories are skipped to avoid traversal cycles. Empty directories
// produce no entries.
func SelectFiles(root string, policy Policy) ([]string, error) {
	exclude, err := pattern.Compile(policy.Exclude)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "exclude rules")
	}
	include, err := pattern.Compile(policy.Include)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "include rules")
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "walk %s", path)
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "relativize %s", path)
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			// Pruning an excluded subtree is safe only when no include
			// rule could re-select a file beneath it.
			if include.Empty() && exclude.Match(rel, true) {
				return fs.SkipDir
			}
			return nil
		}

		// WalkDir does not follow symlinks, so links show up as non-dir
		// entries. Resolve them: links to files are packaged, links to
		// directories and broken links are skipped.
		info, err := d.Info()
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "stat %s", path)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			resolved, err := os.Stat(path)
			if err != nil || resolved.IsDir() {
				return nil
			}
			info = resolved
		}

		if include.Match(rel, false) {
			files = append(files, rel)
			return nil
		}
		if exclude.Match(rel, false) {
			return nil
		}
		if info.Size() > policy.MaxFileSize {
			return errors.New(errors.ErrCodeFileTooLarge,
				"the file %s is suspiciously large; add it to `include` in %s to package it anyway, or to `exclude` to skip it",
				rel, PolicyFileName)
		}
		files = append(files, rel)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return files, nil
}
