package share

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/photo-booth-go/domain/strip"
)

var (
	// ErrIncompleteStrip is returned when exporting a strip with fewer than
	// four photos.
	ErrIncompleteStrip = errors.New("share: strip is incomplete")
	// ErrEmptyImage is returned when there is nothing to rasterize or save.
	ErrEmptyImage = errors.New("share: empty image")
)

// Rasterizer turns a composed image into encoded bytes.
type Rasterizer interface {
	Rasterize(img image.Image) ([]byte, error)
}

// PNGRasterizer encodes images as PNG.
type PNGRasterizer struct {
	Level png.CompressionLevel
}

func (r PNGRasterizer) Rasterize(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: r.Level}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Exporter rasterizes strips and writes them to disk.
type Exporter struct {
	raster Rasterizer
	settle time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewExporter returns an exporter. A nil rasterizer selects PNG.
func NewExporter(r Rasterizer, settle time.Duration, logger *slog.Logger) *Exporter {
	if r == nil {
		r = PNGRasterizer{}
	}
	return &Exporter{raster: r, settle: settle, now: time.Now, logger: logger}
}

// Export waits the settle delay then rasterizes a complete artifact.
func (e *Exporter) Export(ctx context.Context, art strip.Artifact) ([]byte, error) {
	if !art.Complete {
		return nil, ErrIncompleteStrip
	}
	if e.settle > 0 {
		t := time.NewTimer(e.settle)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	data, err := e.raster.Rasterize(art.Image)
	if err != nil {
		return nil, fmt.Errorf("rasterize strip: %w", err)
	}
	return data, nil
}

// Download writes data to dir as photo-strip-<unix-ms>.png and returns the
// path. An existing file is never overwritten.
func (e *Exporter) Download(data []byte, dir string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	base := fmt.Sprintf("photo-strip-%d", e.now().UnixMilli())
	path := filepath.Join(dir, base+".png")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		path = filepath.Join(dir, base+"-"+uuid.NewString()[:8]+".png")
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if e.logger != nil {
		e.logger.Info("strip saved", "path", path, "bytes", len(data))
	}
	return path, nil
}
