// Package storage abstracts file storage behind a Disk interface with
// local-filesystem and S3-compatible drivers. Used for product and
// category image uploads.
package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/hearthworks/remodel/config"
)

// Disk is a file storage backend.
type Disk interface {
	Put(path string, content []byte) error
	PutStream(path string, r io.Reader) error
	Get(path string) ([]byte, error)
	GetStream(path string) (io.ReadCloser, error)
	Exists(path string) bool
	Delete(path string) error
	// URL returns the public URL for a stored file.
	URL(path string) string
}

var (
	disksMu sync.Mutex
	disks   = map[string]Disk{}
)

// Use returns the named disk, creating it on first use.
// Known names: "local", "s3". An empty name resolves to STORAGE_DISK.
func Use(name string) (Disk, error) {
	if name == "" {
		name = config.StorageDefault()
	}

	disksMu.Lock()
	defer disksMu.Unlock()

	if d, ok := disks[name]; ok {
		return d, nil
	}

	var (
		d   Disk
		err error
	)
	switch name {
	case "local":
		d = newLocalDisk()
	case "s3":
		d, err = newS3Disk()
	default:
		err = fmt.Errorf("storage: unknown disk %q", name)
	}
	if err != nil {
		return nil, err
	}

	disks[name] = d
	return d, nil
}

// RegisterDisk installs a custom disk under name; tests use this to
// swap in an in-memory implementation.
func RegisterDisk(name string, d Disk) {
	disksMu.Lock()
	defer disksMu.Unlock()
	disks[name] = d
}

// Default returns the disk named by STORAGE_DISK.
func Default() (Disk, error) { return Use("") }
