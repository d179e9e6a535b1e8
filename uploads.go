package roamstay

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/xid"
)

// FileStore persists uploaded profile photos and returns the
// server-relative path recorded on the account.
type FileStore interface {
	Save(filename string, r io.Reader) (string, error)
}

// DiskFileStore writes uploads to a local directory served under
// /uploads/.
type DiskFileStore struct {
	dir string
}

func NewDiskFileStore(dir string) (*DiskFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskFileStore{dir: dir}, nil
}

func (s *DiskFileStore) Save(filename string, r io.Reader) (string, error) {
	// The stored name is a fresh id; only the extension survives from the
	// client-supplied filename.
	name := xid.New().String() + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
