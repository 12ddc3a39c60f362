package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultFetchTimeout is the default timeout for remote image downloads.
	DefaultFetchTimeout = 30 * time.Second
	// DefaultMaxImageSize is the default maximum image size (20MB).
	DefaultMaxImageSize = 20 * 1024 * 1024
)

var (
	ErrImageNotFound   = errors.New("image does not exist")
	ErrImageUnreadable = errors.New("image could not be read")
	ErrEmptyImage      = errors.New("image is empty")
	ErrImageTooLarge   = errors.New("image too large")
	ErrBlockedHost     = errors.New("image host is not allowed")
)

var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// Encoder loads images from local paths, file:// URIs or http(s) URLs and
// encodes them as base64.
type Encoder struct {
	client  *resty.Client
	timeout time.Duration
	maxSize int64
}

// NewEncoder creates an Encoder with default settings.
func NewEncoder() *Encoder {
	return &Encoder{
		client:  resty.New().SetDebug(false).SetTimeout(DefaultFetchTimeout),
		timeout: DefaultFetchTimeout,
		maxSize: DefaultMaxImageSize,
	}
}

// WithTimeout sets a custom timeout for remote downloads.
func (e *Encoder) WithTimeout(timeout time.Duration) *Encoder {
	e.timeout = timeout
	e.client.SetTimeout(timeout)
	return e
}

// WithMaxSize sets a custom maximum image size in bytes.
func (e *Encoder) WithMaxSize(maxSize int64) *Encoder {
	e.maxSize = maxSize
	return e
}

// WithPublicHostsOnly refuses remote downloads from loopback, private,
// link-local and other non-public addresses. The check runs on the resolved
// address of every connection, redirects included.
func (e *Encoder) WithPublicHostsOnly() *Encoder {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   publicAddressOnly,
	}
	e.client.SetTransport(&http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
	})
	return e
}

func publicAddressOnly(network, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil || !isPublicAddr(ap.Addr()) {
		return fmt.Errorf("%w: %s", ErrBlockedHost, address)
	}
	return nil
}

func isPublicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	switch {
	case !addr.IsValid(),
		addr.IsUnspecified(),
		addr.IsLoopback(),
		addr.IsPrivate(),
		addr.IsLinkLocalUnicast(),
		addr.IsLinkLocalMulticast(),
		addr.IsInterfaceLocalMulticast(),
		addr.IsMulticast(),
		sharedAddressSpace.Contains(addr):
		return false
	}
	return true
}

// Encode reads the image behind src and returns its base64 encoding together
// with the sniffed MIME type.
func (e *Encoder) Encode(ctx context.Context, src string) (string, string, error) {
	data, err := e.Load(ctx, src)
	if err != nil {
		return "", "", err
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	if encoded == "" {
		return "", "", ErrEmptyImage
	}

	mimeType := DetectMIMEType(data)
	log.Debug().
		Int("bytes", len(data)).
		Int("encodedLength", len(encoded)).
		Str("mimeType", mimeType).
		Msg("image encoded")

	return encoded, mimeType, nil
}

// Load returns the raw bytes behind src.
func (e *Encoder) Load(ctx context.Context, src string) ([]byte, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrImageNotFound
	}
	if IsRemote(src) {
		return e.fetch(ctx, src)
	}
	return e.readFile(LocalPath(src))
}

func (e *Encoder) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrImageUnreadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrImageUnreadable, path)
	}
	if info.Size() > e.maxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", ErrImageTooLarge, info.Size(), e.maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageUnreadable, err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	return data, nil
}

func (e *Encoder) fetch(ctx context.Context, imageURL string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.R().
		SetContext(reqCtx).
		SetDoNotParseResponse(true).
		Get(imageURL)
	if err != nil {
		if errors.Is(err, ErrBlockedHost) {
			return nil, fmt.Errorf("%w: %w", ErrImageUnreadable, ErrBlockedHost)
		}
		return nil, fmt.Errorf("%w: failed to download image: %v", ErrImageUnreadable, err)
	}
	body := resp.RawBody()
	defer body.Close()

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, imageURL)
	case resp.StatusCode() != http.StatusOK:
		return nil, fmt.Errorf("%w: download failed: status %d", ErrImageUnreadable, resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: invalid content type: expected image/*, got %s", ErrImageUnreadable, contentType)
	}

	if resp.RawResponse != nil && resp.RawResponse.ContentLength > e.maxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", ErrImageTooLarge, resp.RawResponse.ContentLength, e.maxSize)
	}

	// Content-Length may be missing or wrong
	data, err := io.ReadAll(io.LimitReader(body, e.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image data: %v", ErrImageUnreadable, err)
	}
	if int64(len(data)) > e.maxSize {
		return nil, fmt.Errorf("%w: exceeds limit of %d bytes", ErrImageTooLarge, e.maxSize)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	return data, nil
}

// IsRemote reports whether src is an http(s) URL.
func IsRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// LocalPath converts a file:// URI to a filesystem path. Plain paths are
// returned as-is.
func LocalPath(src string) string {
	if !strings.HasPrefix(strings.ToLower(src), "file://") {
		return src
	}
	u, err := url.Parse(src)
	if err != nil || u.Path == "" {
		return strings.TrimPrefix(src, src[:len("file://")])
	}
	return u.Path
}

// DetectMIMEType sniffs the image type of data, defaulting to image/jpeg.
func DetectMIMEType(data []byte) string {
	if ct := http.DetectContentType(data); strings.HasPrefix(ct, "image/") {
		return ct
	}
	// HEIC/HEIF from phone cameras is not recognized by the standard sniffer
	if len(data) >= 12 && bytes.Equal(data[4:8], []byte("ftyp")) {
		switch string(data[8:12]) {
		case "heic", "heix", "hevc", "hevx":
			return "image/heic"
		case "mif1", "msf1", "heif":
			return "image/heif"
		}
	}
	return "image/jpeg"
}
