package safe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultMaxFileSize caps reads at 1 MiB. A patch config is a few hundred
// bytes; anything near the cap is the wrong file.
const DefaultMaxFileSize = 1 << 20

// Sentinel errors returned by ReadFile. Callers add path context by
// wrapping, so matching goes through errors.Is.
var (
	ErrSymlink    = errors.New("path is a symlink")
	ErrNotRegular = errors.New("not a regular file")
	ErrTooLarge   = errors.New("file too large")
)

// ReadFileOptions configures the behavior of ReadFile.
type ReadFileOptions struct {
	// MaxSize is the maximum number of bytes to read. Zero means
	// DefaultMaxFileSize.
	MaxSize int64
	// AllowSymlinks permits reading through symlinked paths. Default is
	// false: a mod config that turns into a symlink is suspicious.
	AllowSymlinks bool
}

// ReadFile reads a regular file, refusing symlinks and enforcing a size
// cap. The cap is enforced on the bytes actually read rather than on a
// pre-read stat, so a file that grows between the two is still caught.
func ReadFile(path string, opts *ReadFileOptions) ([]byte, error) {
	if opts == nil {
		opts = &ReadFileOptions{}
	}
	maxSize := opts.MaxSize
	if maxSize == 0 {
		maxSize = DefaultMaxFileSize
	}

	clean := filepath.Clean(path)

	info, err := os.Lstat(clean)
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if !opts.AllowSymlinks {
			return nil, fmt.Errorf("%q: %w", path, ErrSymlink)
		}
		if info, err = os.Stat(clean); err != nil {
			return nil, err
		}
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%q: %w", path, ErrNotRegular)
	}

	// #nosec G304 - the path was validated above.
	f, err := os.Open(clean)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%q exceeds %d bytes: %w", path, maxSize, ErrTooLarge)
	}
	return data, nil
}
