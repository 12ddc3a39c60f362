package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/raine/watch-appraiser/internal/catalog"
	"github.com/raine/watch-appraiser/internal/imaging"
	"github.com/raine/watch-appraiser/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	// MaxAttempts is the number of remote calls made before giving up.
	MaxAttempts = 3
	// BaseBackoff is multiplied by the attempt number between retries.
	BaseBackoff = time.Second
	// DefaultAttemptTimeout bounds a single remote call.
	DefaultAttemptTimeout = 60 * time.Second
)

// Request is what a Service receives for a single attempt.
type Request struct {
	EncodedImage string
	MIMEType     string
	Language     Language
	Prompt       string
}

// Service performs one remote analysis call and returns the raw JSON object.
// Failures should be returned as *Error with the matching Kind.
type Service interface {
	Generate(ctx context.Context, req *Request) ([]byte, error)
}

// Normalizer bounds an image before it is encoded. It returns a reference to
// the normalized image.
type Normalizer interface {
	Normalize(ctx context.Context, src string) (string, error)
}

// Releaser is implemented by normalizers whose output must be cleaned up.
type Releaser interface {
	Release(ref string)
}

// Encoder turns an image reference into base64 data and its MIME type.
type Encoder interface {
	Encode(ctx context.Context, src string) (encoded string, mimeType string, err error)
}

// Image is an already encoded image.
type Image struct {
	Data     string
	MIMEType string
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Pipeline drives image analysis from a reference to a validated Result.
// It holds no per-call state and is safe for concurrent use.
type Pipeline struct {
	service        Service
	normalizer     Normalizer
	encoder        Encoder
	knowledge      string
	sleep          Sleeper
	attemptTimeout time.Duration
	maxAttempts    int
}

type Option func(*Pipeline)

// WithKnowledge replaces the reference text embedded in the prompt.
func WithKnowledge(knowledge string) Option {
	return func(p *Pipeline) { p.knowledge = knowledge }
}

// WithSleeper replaces the backoff wait, mainly for tests.
func WithSleeper(s Sleeper) Option {
	return func(p *Pipeline) { p.sleep = s }
}

// WithAttemptTimeout sets the time budget of one remote call. Zero disables it.
func WithAttemptTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.attemptTimeout = d }
}

// WithMaxAttempts overrides the attempt budget.
func WithMaxAttempts(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// NewPipeline creates a pipeline. normalizer may be nil to skip normalization.
func NewPipeline(service Service, normalizer Normalizer, encoder Encoder, opts ...Option) *Pipeline {
	p := &Pipeline{
		service:        service,
		normalizer:     normalizer,
		encoder:        encoder,
		knowledge:      catalog.Default.KnowledgeBase(),
		sleep:          sleepContext,
		attemptTimeout: DefaultAttemptTimeout,
		maxAttempts:    MaxAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Analyze normalizes, encodes and analyzes the image behind src. Any error
// returned is an *Error.
func (p *Pipeline) Analyze(ctx context.Context, src, lang string) (*Result, error) {
	start := time.Now()
	result, err := p.analyze(ctx, src, lang)
	observe(start, err)
	return result, err
}

// AnalyzeEncoded analyzes an image that is already encoded. Any error
// returned is an *Error.
func (p *Pipeline) AnalyzeEncoded(ctx context.Context, img Image, lang string) (*Result, error) {
	start := time.Now()
	result, err := p.analyzeEncoded(ctx, img, lang)
	observe(start, err)
	return result, err
}

func (p *Pipeline) analyze(ctx context.Context, src, lang string) (*Result, error) {
	if strings.TrimSpace(src) == "" {
		return nil, Errorf(KindEmptyInput, "no image reference provided")
	}

	ref, release := p.normalize(ctx, src)
	defer release()

	encoded, mimeType, err := p.encoder.Encode(ctx, ref)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return nil, NewError(KindCanceled, ctx.Err())
		case errors.Is(err, imaging.ErrEmptyImage):
			return nil, NewError(KindEmptyInput, err)
		}
		return nil, NewError(KindImageReadFailure, err)
	}

	return p.analyzeEncoded(ctx, Image{Data: encoded, MIMEType: mimeType}, lang)
}

// normalize never fails; on error it falls back to the original reference.
func (p *Pipeline) normalize(ctx context.Context, src string) (string, func()) {
	noop := func() {}
	if p.normalizer == nil {
		return src, noop
	}

	out, err := p.normalizer.Normalize(ctx, src)
	if err != nil || out == "" {
		log.Warn().Err(err).Str("src", src).Msg("image normalization failed, using original image")
		metrics.NormalizeFallbackTotal.Inc()
		return src, noop
	}
	if r, ok := p.normalizer.(Releaser); ok && out != src {
		return out, func() { r.Release(out) }
	}
	return out, noop
}

func (p *Pipeline) analyzeEncoded(ctx context.Context, img Image, lang string) (*Result, error) {
	if strings.TrimSpace(img.Data) == "" {
		return nil, Errorf(KindEmptyInput, "encoded image is empty")
	}

	language := ResolveLanguage(lang)
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	req := &Request{
		EncodedImage: img.Data,
		MIMEType:     mimeType,
		Language:     language,
		Prompt:       BuildPrompt(p.knowledge, language),
	}

	var lastErr *Error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		log.Info().
			Int("attempt", attempt).
			Int("maxAttempts", p.maxAttempts).
			Str("language", language.Code).
			Msg("analysis attempt")

		result, err := p.attempt(ctx, req)
		if err == nil {
			metrics.AttemptsTotal.WithLabelValues("success").Inc()
			log.Info().
				Int("attempt", attempt).
				Str("brand", result.Brand).
				Str("model", result.Model).
				Float64("confidence", result.Confidence).
				Msg("analysis succeeded")
			return result, nil
		}

		lastErr = classify(ctx, err)
		metrics.AttemptsTotal.WithLabelValues(lastErr.Kind.String()).Inc()
		log.Warn().
			Err(lastErr.Err).
			Int("attempt", attempt).
			Stringer("kind", lastErr.Kind).
			Bool("retryable", lastErr.Kind.Retryable()).
			Msg("analysis attempt failed")

		if !lastErr.Kind.Retryable() || attempt == p.maxAttempts {
			break
		}

		delay := BaseBackoff * time.Duration(attempt)
		if err := p.sleep(ctx, delay); err != nil {
			return nil, NewError(KindCanceled, err)
		}
	}

	return nil, lastErr
}

func (p *Pipeline) attempt(ctx context.Context, req *Request) (*Result, error) {
	if p.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.attemptTimeout)
		defer cancel()
	}

	raw, err := p.service.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// classify turns an attempt error into a tagged error. Once the caller's
// context is done nothing else matters.
func classify(ctx context.Context, err error) *Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return NewError(KindCanceled, ctxErr)
	}
	return AsError(err)
}

func observe(start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = KindOf(err).String()
	}
	metrics.AnalysesTotal.WithLabelValues(outcome).Inc()
	metrics.AnalysisDurationSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
