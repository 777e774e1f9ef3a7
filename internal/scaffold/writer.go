package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// WriteNewFile writes content to relativePath under baseDir.
//
// The path must stay inside baseDir. Parent directories are created as
// needed, and an existing file is never overwritten. Returns the full path.
func WriteNewFile(baseDir, relativePath string, content []byte) (string, error) {
	if baseDir == "" || relativePath == "" {
		return "", ferrors.InternalError("base directory and path are required").Build()
	}

	cleanRel := filepath.Clean(relativePath)
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", ferrors.PathError("path escapes the site directory").WithPath(relativePath).Build()
	}
	fullPath := filepath.Join(baseDir, cleanRel)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryIO, "failed to create directory").
			Fatal().WithPath(filepath.Dir(fullPath)).WithContext("op", "mkdir").Build()
	}

	// #nosec G304 -- fullPath is validated to stay under baseDir.
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ferrors.PathError("file already exists").WithPath(fullPath).Build()
		}
		return "", ferrors.WrapError(err, ferrors.CategoryIO, "failed to create file").
			Fatal().WithPath(fullPath).WithContext("op", "create").Build()
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Write(content); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryIO, "failed to write file").
			Fatal().WithPath(fullPath).WithContext("op", "write").Build()
	}
	return fullPath, nil
}
