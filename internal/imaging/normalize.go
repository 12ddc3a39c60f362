// Package imaging prepares captured watch photos for analysis: it bounds their
// size and turns them into a text-safe encoding.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultMaxDimension is the largest width or height sent for analysis.
	DefaultMaxDimension = 1024
	// DefaultQuality is the JPEG quality used when re-encoding.
	DefaultQuality = 90
	// MaxPixels bounds the declared width*height an image may have before it
	// is decoded.
	MaxPixels = 50_000_000

	normalizedPrefix = "watch-normalized-"
)

// JPEGNormalizer downsizes local images and re-encodes them as JPEG into
// temporary files.
type JPEGNormalizer struct {
	dir          string
	maxDimension int
	quality      int
	maxSize      int64
}

// NewJPEGNormalizer creates a normalizer writing its output into dir. An empty
// dir uses the system temp directory.
func NewJPEGNormalizer(dir string) *JPEGNormalizer {
	if dir == "" {
		dir = os.TempDir()
	}
	return &JPEGNormalizer{
		dir:          dir,
		maxDimension: DefaultMaxDimension,
		quality:      DefaultQuality,
		maxSize:      DefaultMaxImageSize,
	}
}

// WithMaxDimension sets a custom dimension bound.
func (n *JPEGNormalizer) WithMaxDimension(px int) *JPEGNormalizer {
	n.maxDimension = px
	return n
}

// WithMaxSize sets the largest file size in bytes the normalizer will read.
func (n *JPEGNormalizer) WithMaxSize(maxSize int64) *JPEGNormalizer {
	n.maxSize = maxSize
	return n
}

// WithQuality sets a custom JPEG quality (1-100).
func (n *JPEGNormalizer) WithQuality(q int) *JPEGNormalizer {
	n.quality = q
	return n
}

// Normalize returns a reference to a bounded JPEG copy of src. Remote
// references are returned unchanged since there is no local file to rewrite.
func (n *JPEGNormalizer) Normalize(ctx context.Context, src string) (string, error) {
	if IsRemote(src) {
		return src, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := LocalPath(src)
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if info.Size() > n.maxSize {
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", ErrImageTooLarge, info.Size(), n.maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	out, err := Normalize(data, n.maxDimension, n.quality)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(n.dir, normalizedPrefix+"*.jpg")
	if err != nil {
		return "", fmt.Errorf("failed to create normalized file: %w", err)
	}
	if _, err := f.Write(out); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write normalized image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write normalized image: %w", err)
	}

	log.Debug().
		Str("src", src).
		Str("dst", f.Name()).
		Int("inputBytes", len(data)).
		Int("outputBytes", len(out)).
		Msg("image normalized")

	return f.Name(), nil
}

// Release removes a file previously produced by Normalize. Other references
// are left untouched.
func (n *JPEGNormalizer) Release(ref string) {
	if filepath.Dir(ref) != filepath.Clean(n.dir) || !strings.HasPrefix(filepath.Base(ref), normalizedPrefix) {
		return
	}
	if err := os.Remove(ref); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", ref).Msg("failed to remove normalized image")
	}
}

// Normalize decodes data, scales it so neither side exceeds maxDimension
// while keeping the aspect ratio, corrects its EXIF orientation and encodes it
// as JPEG at the given quality. Images already within bounds are re-encoded
// without scaling. Images declaring more than MaxPixels are rejected before
// decoding.
func Normalize(data []byte, maxDimension, quality int) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image has no pixels")
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, MaxPixels)
	}

	orientation := readOrientation(data)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	// The bound applies to the larger side, so scaling before rotating gives
	// the same output size.
	if nw, nh, scaled := fitWithin(w, h, maxDimension); scaled {
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
		img = dst
	}
	img = applyOrientation(img, orientation)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin computes dimensions bounded by max on both sides. scaled is false
// when the input already fits.
func fitWithin(w, h, max int) (nw, nh int, scaled bool) {
	if max <= 0 || (w <= max && h <= max) {
		return w, h, false
	}
	if w >= h {
		nw = max
		nh = int(float64(h) * float64(max) / float64(w))
	} else {
		nh = max
		nw = int(float64(w) * float64(max) / float64(h))
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh, true
}
