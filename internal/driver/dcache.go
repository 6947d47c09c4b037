package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"grammarsmith/internal/diag"
)

// diskCacheSchema меняется при любом изменении DiskPayload.
const diskCacheSchema uint16 = 1

// DiskCache stores per-file check results keyed by content hash and options.
// Entries are msgpack files under <dir>/entries; it is safe for concurrent
// use by CheckDir workers.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of checking one file. Diags carry no
// meaningful FileID; the reader stamps its own.
type DiskPayload struct {
	Schema      uint16
	Path        string
	ContentHash [32]byte
	Tokens      int
	Statements  int
	Diags       []diag.Diagnostic
}

// OpenDiskCache opens the cache of app under $XDG_CACHE_HOME or ~/.cache.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		base, err = xdg, nil
	}
	if err != nil {
		return nil, err
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens (creating if needed) a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "entries"), 0o750); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// CacheKey mixes the content hash with the schema and with every option
// that changes what a check reports.
func CacheKey(contentHash [32]byte, opts Options) [32]byte {
	var tail [11]byte
	binary.LittleEndian.PutUint16(tail[:2], diskCacheSchema)
	binary.LittleEndian.PutUint64(tail[2:10], uint64(max(opts.MaxDiagnostics, 0)))
	if opts.Eval {
		tail[10] = 1
	}
	return sha256.Sum256(append(contentHash[:], tail[:]...))
}

func (c *DiskCache) entryPath(key [32]byte) string {
	name := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "entries", name[:2], name+".mp")
}

// Put writes payload under key, replacing any previous entry atomically.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	payload.Schema = diskCacheSchema
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return writeAtomic(c.entryPath(key), data)
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmp.Name(), path)
	}
	if werr != nil {
		_ = os.Remove(tmp.Name())
	}
	return werr
}

// Get loads the entry for key into out. A missing entry or one written with
// another schema is a miss, not an error.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entryPath(key))
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchema, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := filepath.Join(c.dir, "entries")
	if err := os.RemoveAll(entries); err != nil {
		return err
	}
	return os.MkdirAll(entries, 0o750)
}
