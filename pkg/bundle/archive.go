package bundle

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/epfml/codepack/pkg/errors"
)

// Pack writes every file in files into a gzip-compressed tar stream and
// returns the complete buffer. Entries are stored under their
// slash-relative paths, never absolute ones, with size and permission bits
// preserved. Modification times are zeroed so that identical content
// produces identical archives. Entries that are not regular files are
// skipped; a file that cannot be read aborts packing with an IO_ERROR
// naming it.
//
// The output is a plain .tar.gz readable by standard archive tools.
func Pack(root string, files []string) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))

		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", rel)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		hdr := &tar.Header{
			Name: rel,
			Mode: int64(info.Mode().Perm()),
			Size: info.Size(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "write header for %s", rel)
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", rel)
		}
		_, err = io.Copy(tw, f)
		f.Close()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", rel)
		}
	}

	if err := tw.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "finalize tar stream")
	}
	if err := gz.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "finalize gzip stream")
	}
	return buf.Bytes(), nil
}

// Unpack extracts a gzip'd tar archive into dest, creating directories as
// needed and overwriting existing files without confirmation. Entries
// whose resolved path would escape dest are rejected with PATH_TRAVERSAL.
func Unpack(data []byte, dest string) error {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "not a gzip archive")
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "corrupt tar stream")
		}

		target, err := securePath(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "create directory %s", hdr.Name)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "create directory for %s", hdr.Name)
			}
			if err := writeEntry(target, tr, hdr); err != nil {
				return err
			}
		default:
			// Symlinks, devices and other entry kinds are not produced
			// by Pack and are ignored on extraction.
		}
	}
}

// writeEntry writes one regular-file entry to target with the archived
// permission bits.
func writeEntry(target string, r io.Reader, hdr *tar.Header) error {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode).Perm())
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", hdr.Name)
	}
	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", hdr.Name)
	}
	return nil
}

// securePath joins an archive entry name onto dest and verifies the
// result stays inside dest. Absolute entry names and ../ escapes are
// rejected.
func securePath(dest, name string) (string, error) {
	clean := filepath.FromSlash(name)
	if filepath.IsAbs(clean) {
		return "", errors.New(errors.ErrCodePathTraversal, "archive entry %q has an absolute path", name)
	}
	target := filepath.Join(dest, clean)
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New(errors.ErrCodePathTraversal, "archive entry %q escapes the extraction root", name)
	}
	return target, nil
}
