package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"ave/internal/diag"
	"ave/internal/source"
	"ave/internal/token"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит токен-потоки по хэшу содержимого файла. Кэшируются только
// файлы без лексических ошибок, так что попадание означает чистый поток.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedToken is the compact on-disk token form; spans are rebuilt against
// the current FileID on load.
type CachedToken struct {
	Kind  uint8
	Start uint32
	End   uint32
	Text  string
	Num   float64
}

// DiskPayload stores the cached token stream for one source file.
type DiskPayload struct {
	Schema uint16
	Path   string
	Tokens []CachedToken
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "tokens")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(hash [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".msgpack")
}

// Load возвращает токены для файла с данным хэшем содержимого.
func (c *DiskCache) Load(file *source.File) ([]token.Token, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(file.Hash))
	if err != nil {
		return nil, false
	}
	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}

	tokens := make([]token.Token, 0, len(payload.Tokens))
	for _, ct := range payload.Tokens {
		tokens = append(tokens, token.Token{
			Kind: token.Kind(ct.Kind),
			Span: source.Span{File: file.ID, Start: ct.Start, End: ct.End},
			Text: ct.Text,
			Num:  ct.Num,
		})
	}
	return tokens, true
}

// Store записывает токен-поток файла. Вызывающий гарантирует отсутствие
// лексических ошибок.
func (c *DiskCache) Store(file *source.File, tokens []token.Token) error {
	payload := DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   file.Path,
		Tokens: make([]CachedToken, 0, len(tokens)),
	}
	for _, t := range tokens {
		payload.Tokens = append(payload.Tokens, CachedToken{
			Kind:  uint8(t.Kind),
			Start: t.Span.Start,
			End:   t.Span.End,
			Text:  t.Text,
			Num:   t.Num,
		})
	}

	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return fmt.Errorf("failed to marshal token cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	tmp := c.pathFor(file.Hash) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}
	return os.Rename(tmp, c.pathFor(file.Hash))
}

// Clear удаляет все закэшированные потоки.
func (c *DiskCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// TokenizeCached — как Tokenize, но с попыткой попадания в кэш.
// cache может быть nil — тогда обычный путь.
func TokenizeCached(cache *DiskCache, path string, maxDiagnostics int) (*TokenizeResult, error) {
	if cache == nil {
		return Tokenize(path, maxDiagnostics)
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	if tokens, ok := cache.Load(file); ok {
		return &TokenizeResult{
			FileSet: fs,
			File:    file,
			Tokens:  tokens,
			Bag:     diag.NewBag(maxDiagnostics),
		}, nil
	}

	result := tokenizeFile(fs, fileID, maxDiagnostics)
	if !result.Bag.HasErrors() {
		// ошибка записи кэша не мешает компиляции
		_ = cache.Store(file, result.Tokens)
	}
	return result, nil
}
