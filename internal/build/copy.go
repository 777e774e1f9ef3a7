package build

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

func copyError(err error, src, dst string) error {
	return ferrors.WrapError(err, ferrors.CategoryCopy, "failed to copy file").
		Fatal().
		WithContext("source", src).
		WithContext("destination", dst).
		Build()
}

// copyFile copies src to dst byte for byte, creating dst's parent.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return copyError(err, src, dst)
	}

	// #nosec G304 -- src comes from walking the content or template root.
	in, err := os.Open(src)
	if err != nil {
		return copyError(err, src, dst)
	}
	defer func() { _ = in.Close() }()

	// #nosec G304 G302 -- dst is resolved inside the staging directory.
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return copyError(err, src, dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return copyError(err, src, dst)
	}
	if err := out.Close(); err != nil {
		return copyError(err, src, dst)
	}
	return nil
}

// copyTree mirrors the regular files under src into dst and returns how many
// files were copied. fn, when set, is consulted with each destination before
// it is written.
func copyTree(src, dst string, fn func(src, dst string) error) (int, error) {
	copied := 0
	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return copyError(err, p, dst)
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return copyError(err, p, dst)
		}
		target := filepath.Join(dst, rel)
		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, dirPerm); err != nil {
				return copyError(err, p, target)
			}
			return nil
		case !d.Type().IsRegular():
			return nil
		}
		if fn != nil {
			if err := fn(p, target); err != nil {
				return err
			}
		}
		if err := copyFile(p, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}
