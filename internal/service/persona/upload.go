package persona

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Uploads stores user images under random names after checking their content type.
type Uploads struct {
	dir      string
	maxBytes int64
}

func NewUploads(dir string, maxBytes int64) *Uploads {
	return &Uploads{dir: dir, maxBytes: maxBytes}
}

func (u *Uploads) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > u.maxBytes {
		return "", fmt.Errorf("%w: larger than %d bytes", core.ErrUnsupportedUpload, u.maxBytes)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: %s", core.ErrUnsupportedUpload, mtype.String())
	}

	if err := os.MkdirAll(u.dir, 0755); err != nil {
		return "", fmt.Errorf("create uploads directory: %w", err)
	}

	path := filepath.Join(u.dir, strings.ReplaceAll(uuid.NewString(), "-", "")+mtype.Extension())
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}
