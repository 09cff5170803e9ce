// Package icon loads tool icons and scales them to menu size.
package icon

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"path/filepath"
	"time"

	"github.com/leeforge/modkit/cache"
	"github.com/leeforge/modkit/plugin"
	"github.com/nfnt/resize"
	"github.com/spf13/afero"
)

// DefaultSize is the edge of the square box icons are fitted into.
const DefaultSize uint = 32

// pngTTL bounds how long an encoded icon is served after the file changes.
const pngTTL = time.Minute

// ErrNoIcon is returned for a tool without an icon.
var ErrNoIcon = errors.New("tool has no icon")

// Loader reads icons from fs. Relative icon paths resolve against base.
type Loader struct {
	fs    afero.Fs
	base  string
	size  uint
	cache *cache.Memory[[]byte]
}

// NewLoader creates a loader. A zero size uses DefaultSize.
func NewLoader(fs afero.Fs, base string, size uint) *Loader {
	if size == 0 {
		size = DefaultSize
	}
	return &Loader{fs: fs, base: base, size: size, cache: cache.NewMemory[[]byte](pngTTL)}
}

// Size returns the bounding box edge.
func (l *Loader) Size() uint { return l.size }

func (l *Loader) path(icon plugin.Icon) string {
	if filepath.IsAbs(icon.Path) || l.base == "" {
		return icon.Path
	}
	return filepath.Join(l.base, icon.Path)
}

// Load decodes a png or jpeg icon and fits it into the size box, keeping
// its aspect ratio. Smaller images are returned unchanged.
func (l *Loader) Load(icon plugin.Icon) (image.Image, error) {
	if icon.IsZero() {
		return nil, ErrNoIcon
	}
	f, err := l.fs.Open(l.path(icon))
	if err != nil {
		return nil, fmt.Errorf("open icon: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", icon.Path, err)
	}
	return resize.Thumbnail(l.size, l.size, img, resize.Lanczos3), nil
}

// PNG returns the scaled icon encoded as png. Png keeps transparency,
// which menu icons rely on. Encoded icons are cached for a minute.
func (l *Loader) PNG(icon plugin.Icon) ([]byte, error) {
	if icon.IsZero() {
		return nil, ErrNoIcon
	}
	return l.cache.GetOrLoad(l.path(icon), func() ([]byte, error) {
		img, err := l.Load(icon)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode icon: %w", err)
		}
		return buf.Bytes(), nil
	})
}

// Dimensions returns the size of the icon file without decoding pixels.
func (l *Loader) Dimensions(icon plugin.Icon) (int, int, error) {
	if icon.IsZero() {
		return 0, 0, ErrNoIcon
	}
	f, err := l.fs.Open(l.path(icon))
	if err != nil {
		return 0, 0, fmt.Errorf("open icon: %w", err)
	}
	defer f.Close()

	config, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return config.Width, config.Height, nil
}
