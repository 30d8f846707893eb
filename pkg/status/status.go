// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the outcome for a single file
type FileStatus int

const (
	StatusUnknown     FileStatus = iota
	StatusUnchanged              // No rule changed the content
	StatusModified               // Content changed and was written
	StatusWouldModify            // Content changed but the run is a dry run
	StatusFailed                 // Processing the file failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "no change"
	case StatusModified:
		return "UPDATED"
	case StatusWouldModify:
		return "WOULD UPDATE"
	case StatusFailed:
		return "FAILED"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains metadata about a file
type FileInfo struct {
	Path     string      // Relative path to the file
	Size     int64       // File size in bytes
	Mode     os.FileMode // File permissions
	Checksum string      // Content hash for diff detection
}

// 💾 Manager handles file system access below a base directory
type Manager struct {
	baseDir string
}

// 🏭 New creates a new manager rooted at baseDir
func New(baseDir string) *Manager {
	return &Manager{baseDir: filepath.Clean(baseDir)}
}

// 🔒 getAbsPath returns the absolute path for a slash separated relative path
func (m *Manager) getAbsPath(path string) string {
	return filepath.Join(m.baseDir, filepath.FromSlash(path))
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ReadFile reads a file and describes it
func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, FileInfo, error) {
	absPath := m.getAbsPath(path)

	stat, err := os.Stat(absPath)
	if err != nil {
		return nil, FileInfo{}, errors.Errorf("stating file: %w", err)
	}
	if !stat.Mode().IsRegular() {
		return nil, FileInfo{}, errors.Errorf("%s is not a regular file", path)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, FileInfo{}, errors.Errorf("reading file: %w", err)
	}

	return content, FileInfo{
		Path:     path,
		Size:     int64(len(content)),
		Mode:     stat.Mode().Perm(),
		Checksum: Checksum(content),
	}, nil
}

// WriteFileAtomic replaces a file through a temp file in the same directory.
//
// If expected is non-empty the write is refused when the current content no
// longer hashes to it.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte, mode os.FileMode, expected string) error {
	absPath := m.getAbsPath(path)

	if expected != "" {
		current, err := os.ReadFile(absPath)
		if err != nil {
			return errors.Errorf("re-reading file: %w", err)
		}
		if Checksum(current) != expected {
			return errors.Errorf("%s changed while being rewritten", path)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()
	defer os.Remove(tempPath)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		return errors.Errorf("setting file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", absPath).
		Int("bytes", len(content)).
		Msg("wrote file")

	return nil
}
