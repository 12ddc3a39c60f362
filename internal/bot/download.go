package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultDownloadTimeout is the default timeout for photo downloads
	DefaultDownloadTimeout = 30 * time.Second
	// DefaultMaxImageSize is the default maximum photo size (20MB)
	DefaultMaxImageSize = 20 * 1024 * 1024
)

var errImageTooLarge = errors.New("image too large")

// ImageDownloader fetches Telegram files into a local directory. File URLs
// embed the bot token, so they are never logged or handed to the pipeline.
type ImageDownloader struct {
	client  *resty.Client
	timeout time.Duration
	maxSize int64
	dir     string
}

// NewImageDownloader creates a downloader that writes into dir, or the system
// temp directory when dir is empty.
func NewImageDownloader(dir string) *ImageDownloader {
	return &ImageDownloader{
		client:  resty.New().SetDebug(false).SetTimeout(DefaultDownloadTimeout),
		timeout: DefaultDownloadTimeout,
		maxSize: DefaultMaxImageSize,
		dir:     dir,
	}
}

// WithTimeout sets a custom timeout for downloads.
func (d *ImageDownloader) WithTimeout(timeout time.Duration) *ImageDownloader {
	d.timeout = timeout
	d.client.SetTimeout(timeout)
	return d
}

// WithMaxSize sets a custom maximum file size.
func (d *ImageDownloader) WithMaxSize(maxSize int64) *ImageDownloader {
	d.maxSize = maxSize
	return d
}

// DownloadFile resolves fileID and stores the file under the downloader's
// directory. The caller owns the returned path and must remove it.
func (d *ImageDownloader) DownloadFile(
	ctx context.Context,
	getFileDirectURL func(fileID string) (string, error),
	fileID string,
) (string, error) {
	log.Info().Str("fileID", fileID).Msg("downloading telegram file")

	fileURL, err := getFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("failed to get file URL: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.client.R().
		SetContext(reqCtx).
		SetDoNotParseResponse(true).
		Get(fileURL)
	if err != nil {
		// resty errors repeat the URL
		if ctxErr := reqCtx.Err(); ctxErr != nil {
			return "", fmt.Errorf("failed to download file: %w", ctxErr)
		}
		return "", errors.New("failed to download file: request failed")
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("download failed: status %d", resp.StatusCode())
	}
	if resp.RawResponse != nil && resp.RawResponse.ContentLength > d.maxSize {
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", errImageTooLarge, resp.RawResponse.ContentLength, d.maxSize)
	}

	out, err := os.CreateTemp(d.dir, "tg-*"+filepath.Ext(fileURL))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	n, err := io.Copy(out, io.LimitReader(body, d.maxSize+1))
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	switch {
	case err != nil:
		err = fmt.Errorf("failed to write file: %w", err)
	case n > d.maxSize:
		err = fmt.Errorf("%w: exceeds limit of %d bytes", errImageTooLarge, d.maxSize)
	}
	if err != nil {
		os.Remove(out.Name())
		return "", err
	}

	log.Debug().Str("fileID", fileID).Int64("bytes", n).Msg("telegram file downloaded")
	return out.Name(), nil
}
