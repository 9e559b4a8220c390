package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"distviz/domain/core"
	"distviz/internal/render"
)

// FrameStore keeps exported chart frames under slash-separated keys.
type FrameStore interface {
	StoreFrame(ctx context.Context, key string, data []byte) error
	GetFrame(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteFrame(ctx context.Context, key string) error
	FrameExists(ctx context.Context, key string) (bool, error)
	ListFrames(ctx context.Context, prefix string) ([]string, error)
	GetFrameMetadata(ctx context.Context, key string) (*FrameMetadata, error)
	CleanupExpired(ctx context.Context, olderThan time.Duration) error
}

// FrameMetadata describes a stored frame.
type FrameMetadata struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	LastModified time.Time `json:"last_modified"`
}

// LocalFrameStore implements FrameStore on the local filesystem.
type LocalFrameStore struct {
	basePath string
}

// NewLocalFrameStore creates a store rooted at basePath, creating it if needed.
func NewLocalFrameStore(basePath string) (*LocalFrameStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &LocalFrameStore{basePath: basePath}, nil
}

// ExportKey names the file an instance's current frame is exported to.
func ExportKey(kind core.Kind, id core.InstanceID, hash core.Hash, format render.Format) string {
	return fmt.Sprintf("%s/%s-%s.%s", kind, id, hash.Short(), format)
}

// StoreFrame writes data under key.
func (s *LocalFrameStore) StoreFrame(ctx context.Context, key string, data []byte) error {
	filePath, err := s.keyToPath(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}
	return nil
}

// GetFrame opens a stored frame.
func (s *LocalFrameStore) GetFrame(ctx context.Context, key string) (io.ReadCloser, error) {
	filePath, err := s.keyToPath(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.NewNotFoundError("frame", key)
		}
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	return file, nil
}

// DeleteFrame removes a frame; missing frames are not an error.
func (s *LocalFrameStore) DeleteFrame(ctx context.Context, key string) error {
	filePath, err := s.keyToPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", filePath, err)
	}
	return nil
}

// FrameExists checks if a frame exists.
func (s *LocalFrameStore) FrameExists(ctx context.Context, key string) (bool, error) {
	filePath, err := s.keyToPath(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(filePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check file existence: %w", err)
}

// ListFrames lists keys starting with prefix.
func (s *LocalFrameStore) ListFrames(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.Walk(s.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(s.basePath, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(relPath)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list frames: %w", err)
	}
	return keys, nil
}

// GetFrameMetadata returns size, type and modification time of a frame.
func (s *LocalFrameStore) GetFrameMetadata(ctx context.Context, key string) (*FrameMetadata, error) {
	filePath, err := s.keyToPath(key)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.NewNotFoundError("frame", key)
		}
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	format, _ := render.ParseFormat(strings.TrimPrefix(filepath.Ext(filePath), "."))
	return &FrameMetadata{
		Key:          key,
		Size:         stat.Size(),
		ContentType:  format.ContentType(),
		LastModified: stat.ModTime(),
	}, nil
}

// CleanupExpired removes frames older than olderThan.
func (s *LocalFrameStore) CleanupExpired(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	return filepath.Walk(s.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove expired file %s: %w", path, err)
			}
		}
		return nil
	})
}

// keyToPath maps a key below basePath, refusing keys that escape it.
func (s *LocalFrameStore) keyToPath(key string) (string, error) {
	p := filepath.Join(s.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.basePath, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: invalid frame key %q", core.ErrConstraint, key)
	}
	return p, nil
}

// Export stores the instance's current frame and returns its key.
func (i *Instance) Export(ctx context.Context, store FrameStore) (string, error) {
	data, format, frame, err := i.Chart()
	if err != nil {
		return "", err
	}
	key := ExportKey(i.Kind, i.ID, frame.Hash, format)
	if err := store.StoreFrame(ctx, key, data); err != nil {
		return "", err
	}
	return key, nil
}
