// Package assets resolves and caches the image files the globe is drawn with.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/Faultbox/global-clock/internal/engine/texture"
)

// ErrNotFound is returned when no root contains the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager loads files from a stack of asset roots.
// Roots are searched in reverse order (last added = highest priority).
type Manager struct {
	roots    []fs.FS
	cache    *Cache
	images   map[imageKey]*image.NRGBA
	textures map[imageKey]*texture.Texture
	mu       sync.RWMutex
}

type imageKey struct {
	name     string
	maxWidth int
}

// NewManager creates a new asset manager with no roots.
func NewManager() *Manager {
	return &Manager{
		cache:    NewCache(),
		images:   make(map[imageKey]*image.NRGBA),
		textures: make(map[imageKey]*texture.Texture),
	}
}

// AddDir adds a directory on disk as an asset root.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening asset dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset root %s is not a directory", dir)
	}
	m.AddFS(os.DirFS(dir))
	return nil
}

// AddFS adds a file system as an asset root.
func (m *Manager) AddFS(fsys fs.FS) {
	m.mu.Lock()
	m.roots = append(m.roots, fsys)
	m.mu.Unlock()
}

// Load reads a file. Absolute paths are read from disk directly; relative
// paths are resolved against the roots.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	if filepath.IsAbs(name) {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		m.cache.Set(name, data)
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	key := path.Clean(filepath.ToSlash(name))
	for i := len(m.roots) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.roots[i], key)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Image loads and decodes an image file into packed NRGBA. Images wider than
// maxWidth are downscaled first; maxWidth <= 0 keeps the original size.
func (m *Manager) Image(name string, maxWidth int) (*image.NRGBA, error) {
	key := imageKey{name, maxWidth}

	m.mu.RLock()
	img, ok := m.images[key]
	m.mu.RUnlock()
	if ok {
		return img, nil
	}

	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	decoded, err := texture.Decode(data, name)
	if err != nil {
		return nil, err
	}
	img = texture.ToNRGBA(texture.Downscale(decoded, maxWidth))

	m.mu.Lock()
	m.images[key] = img
	m.mu.Unlock()
	return img, nil
}

// Texture loads an equirectangular map for CPU sampling.
func (m *Manager) Texture(name string, maxWidth int) (*texture.Texture, error) {
	key := imageKey{name, maxWidth}

	m.mu.RLock()
	tex, ok := m.textures[key]
	m.mu.RUnlock()
	if ok {
		return tex, nil
	}

	img, err := m.Image(name, maxWidth)
	if err != nil {
		return nil, err
	}
	tex = texture.Equirectangular(img)

	m.mu.Lock()
	m.textures[key] = tex
	m.mu.Unlock()
	return tex, nil
}

// Placeholder returns a 2x1 map of a single color, used when a configured
// map cannot be loaded.
func Placeholder(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, c)
	img.SetNRGBA(1, 0, c)
	return img
}

// Close drops all roots and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roots = nil
	m.images = make(map[imageKey]*image.NRGBA)
	m.textures = make(map[imageKey]*texture.Texture)
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded files.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
