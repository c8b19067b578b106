package textures

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
)

// Manager caches loaded textures by path.
type Manager struct {
	textures map[string]*Texture2D
	mu       sync.RWMutex
}

// NewManager creates an empty texture manager.
func NewManager() *Manager {
	return &Manager{textures: make(map[string]*Texture2D)}
}

// Load reads a texture from file, returning the cached version if available.
func (m *Manager) Load(path string) (*Texture2D, error) {
	m.mu.RLock()
	if tex, ok := m.textures[path]; ok {
		m.mu.RUnlock()
		return tex, nil
	}
	m.mu.RUnlock()

	tex, err := LoadTexture(path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.textures[path] = tex
	m.mu.Unlock()

	return tex, nil
}

// GetOrDefault returns the texture at path, or the default white texture.
func (m *Manager) GetOrDefault(path string) *Texture2D {
	if path == "" {
		return m.DefaultWhite()
	}
	tex, err := m.Load(path)
	if err != nil {
		fmt.Printf("Warning: failed to load texture %s: %v\n", path, err)
		return m.DefaultWhite()
	}
	return tex
}

// DefaultWhite returns a cached 1x1 white texture.
func (m *Manager) DefaultWhite() *Texture2D {
	const key = "__default_white__"
	m.mu.RLock()
	if tex, ok := m.textures[key]; ok {
		m.mu.RUnlock()
		return tex
	}
	m.mu.RUnlock()

	tex := NewSolidTexture(key, 255, 255, 255, 255)

	m.mu.Lock()
	m.textures[key] = tex
	m.mu.Unlock()

	return tex
}

// DecodeTexture decodes an in-memory PNG or JPEG (e.g. an image embedded in
// a GLB buffer) into a Texture2D with a generated mip chain.
func DecodeTexture(name string, data []byte) (*Texture2D, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", name, err)
	}
	return fromImage(name, img), nil
}

// LoadTexture reads a PNG, JPEG, BMP, or TGA file and builds a Texture2D
// with a generated mip chain.
func LoadTexture(path string) (*Texture2D, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = tga.Decode(f)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	return fromImage(path, img), nil
}

func fromImage(name string, img image.Image) *Texture2D {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	pixels := make([]uint8, w*h*4)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			idx := ((y-bounds.Min.Y)*w + (x - bounds.Min.X)) * 4
			pixels[idx] = uint8(r >> 8)
			pixels[idx+1] = uint8(g >> 8)
			pixels[idx+2] = uint8(b >> 8)
			pixels[idx+3] = uint8(a >> 8)
		}
	}

	return NewTexture2D(name, w, h, pixels)
}
