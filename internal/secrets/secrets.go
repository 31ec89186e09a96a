// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads contact details for NCBI from a directory of
// plain-text files. Each file is one value: the filename is the key and the
// trimmed contents are the value.
//
// Recognised keys: ncbi-email, ncbi-tool.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Keys read by get-papers-list.
const (
	KeyNCBIEmail = "ncbi-email"
	KeyNCBITool  = "ncbi-tool"
)

// Secrets maps key file names to their trimmed contents.
type Secrets map[string]string

// Get returns override when it is non-empty, otherwise the stored value
// for key (or "").
func (s Secrets) Get(key, override string) string {
	if override != "" {
		return override
	}
	return s[key]
}

// Keys returns the stored key names.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// Load reads all regular, non-hidden files in dir. A missing directory is
// not an error and yields an empty Secrets. Unreadable files are logged at
// warn level and skipped.
func Load(dir string, logger *zap.Logger) (Secrets, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", zap.String("key", name), zap.Error(err))
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			out[name] = value
		}
	}
	return out, nil
}
