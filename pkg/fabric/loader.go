package fabric

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

// ErrFormat is returned for a fabric image with an unknown extension.
var ErrFormat = errors.New("unsupported fabric image format")

// decoders by extension. The tga package registers an empty magic string
// that matches any input, so image.Decode cannot be trusted to sniff.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// Loader decodes fabric images from a filesystem. Concurrent requests for
// one image share a single decode and decoded images are cached.
type Loader struct {
	fsys  fs.FS
	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]image.Image
}

// NewLoader creates a loader reading from fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, cache: make(map[string]image.Image)}
}

// Clean maps an image reference to an fs.FS path.
func Clean(ref string) string {
	return strings.TrimPrefix(ref, "/")
}

// Load returns the decoded image for ref. The context only bounds the
// wait; a started decode runs to completion for other waiters.
func (l *Loader) Load(ctx context.Context, ref string) (image.Image, error) {
	name := Clean(ref)

	l.mu.RLock()
	img, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		return img, nil
	}

	ch := l.group.DoChan(name, func() (any, error) {
		img, err := l.decode(name)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[name] = img
		l.mu.Unlock()
		return img, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(image.Image), nil
	}
}

func (l *Loader) decode(name string) (image.Image, error) {
	dec, ok := decoders[strings.ToLower(path.Ext(name))]
	if !ok {
		return nil, fmt.Errorf("fabric: %w: %s", ErrFormat, name)
	}
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("fabric: read %s: %w", name, err)
	}
	img, err := dec(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fabric: decode %s: %w", name, err)
	}
	return img, nil
}

// Forget drops every cached image.
func (l *Loader) Forget() {
	l.mu.Lock()
	clear(l.cache)
	l.mu.Unlock()
}
