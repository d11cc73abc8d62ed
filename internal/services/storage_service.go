package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gigcred/backend/internal/config"
	"github.com/google/uuid"
)

// StorageService archives uploaded documents on local disk.
type StorageService struct {
	cfg *config.Config
}

func NewStorageService(cfg *config.Config) *StorageService {
	// ensure local path exists
	_ = os.MkdirAll(cfg.LocalAssetsPath, 0o755)
	return &StorageService{cfg: cfg}
}

// BuildObjectKey creates a namespaced storage key
func (s *StorageService) BuildObjectKey(kind string, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s/%s%s", kind, uuid.New().String(), ext)
}

// SaveStream saves an incoming stream to local storage and returns absolute path, size and checksum
func (s *StorageService) SaveStream(ctx context.Context, key string, r io.Reader) (string, int64, string, error) {
	absPath := filepath.Join(s.cfg.LocalAssetsPath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", 0, "", err
	}

	tmp := absPath + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", 0, "", err
	}
	defer f.Close()

	hasher := sha256.New()
	n, err := io.Copy(io.MultiWriter(f, hasher), r)
	if err != nil {
		_ = os.Remove(tmp)
		return "", 0, "", err
	}

	if err := f.Sync(); err != nil {
		_ = os.Remove(tmp)
		return "", 0, "", err
	}

	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return "", 0, "", err
	}

	checksum := hex.EncodeToString(hasher.Sum(nil))
	return absPath, n, checksum, nil
}
