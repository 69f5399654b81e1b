package filex

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/satchel/internal/common"
)

// EnsureSubdDir creates (if needed) a subdirectory of the current working
// directory and returns its absolute path. Used for the local database and
// other client-side state.
func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ReadForUpload reads a file destined for a blob-server upload and sniffs its
// MIME type from the leading bytes. Files larger than maxBytes are rejected
// up front so no half-read payload ever reaches the network layer.
func ReadForUpload(path string, maxBytes int64) (data []byte, mimeType string, err error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.Size() > maxBytes {
		return nil, "", fmt.Errorf("%w: file %s is %d bytes, limit is %d", common.ErrorTooLarge, path, fi.Size(), maxBytes)
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	return data, http.DetectContentType(data), nil
}
