package analysis

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/raine/watch-appraiser/internal/catalog"
	"github.com/raine/watch-appraiser/internal/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Generate(ctx context.Context, req *Request) ([]byte, error) {
	args := m.Called(ctx, req)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type stubNormalizer struct {
	out      string
	err      error
	calls    []string
	released []string
}

func (s *stubNormalizer) Normalize(ctx context.Context, src string) (string, error) {
	s.calls = append(s.calls, src)
	return s.out, s.err
}

func (s *stubNormalizer) Release(ref string) {
	s.released = append(s.released, ref)
}

type stubEncoder struct {
	encoded string
	err     error
	calls   []string
}

func (s *stubEncoder) Encode(ctx context.Context, src string) (string, string, error) {
	s.calls = append(s.calls, src)
	if s.err != nil {
		return "", "", s.err
	}
	return s.encoded, "image/jpeg", nil
}

// fakeClock records backoff waits instead of sleeping.
type fakeClock struct {
	mu     sync.Mutex
	waits  []time.Duration
	result error
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waits = append(c.waits, d)
	return c.result
}

func (c *fakeClock) Total() time.Duration {
	var total time.Duration
	for _, w := range c.waits {
		total += w
	}
	return total
}

var testImage = Image{Data: base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")), MIMEType: "image/jpeg"}

func newTestPipeline(svc Service, clock *fakeClock, opts ...Option) *Pipeline {
	opts = append([]Option{WithSleeper(clock.Sleep), WithKnowledge("KB")}, opts...)
	return NewPipeline(svc, nil, &stubEncoder{encoded: testImage.Data}, opts...)
}

func TestAnalyzeEncoded_SuccessFirstAttempt(t *testing.T) {
	svc := new(mockService)
	svc.On("Generate", mock.Anything, mock.Anything).Return([]byte(submarinerJSON), nil).Once()
	clock := &fakeClock{}

	r, err := newTestPipeline(svc, clock).AnalyzeEncoded(context.Background(), testImage, "en")
	require.NoError(t, err)

	assert.Equal(t, submariner(), r)
	svc.AssertNumberOfCalls(t, "Generate", 1)
	assert.Empty(t, clock.waits)
}

func TestAnalyzeEncoded_BuildsRequest(t *testing.T) {
	svc := new(mockService)
	svc.On("Generate", mock.Anything, mock.MatchedBy(func(req *Request) bool {
		return req.EncodedImage == testImage.Data &&
			req.MIMEType == "image/jpeg" &&
			req.Language == French &&
			req.Prompt == BuildPrompt("KB", French)
	})).Return([]byte(submarinerJSON), nil).Once()

	_, err := newTestPipeline(svc, &fakeClock{}).AnalyzeEncoded(context.Background(), testImage, "fr-FR")
	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestAnalyzeEncoded_ResultsSatisfyInvariants(t *testing.T) {
	svc := new(mockService)
	svc.On("Generate", mock.Anything, mock.Anything).Return([]byte(submarinerJSON), nil)

	r, err := newTestPipeline(svc, &fakeClock{}).AnalyzeEncoded(context.Background(), testImage, "en")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, r.Confidence, 0.0)
	assert.LessOrEqual(t, r.Confidence, 100.0)
	assert.GreaterOrEqual(t, r.Authenticity.Confidence, 0.0)
	assert.LessOrEqual(t, r.Authenticity.Confidence, 100.0)
	assert.GreaterOrEqual(t, r.EstimatedValue.Min, 0.0)
	assert.LessOrEqual(t, r.EstimatedValue.Min, r.EstimatedValue.Max)
}

func TestAnalyzeEncoded_RetryBudgetExhausted(t *testing.T) {
	for _, kind := range []Kind{KindRateLimited, KindTimeout, KindResponseParseFailure} {
		t.Run(kind.String(), func(t *testing.T) {
			svc := new(mockService)
			svc.On("Generate", mock.Anything, mock.Anything).
				Return(nil, NewError(kind, errors.New("upstream")))
			clock := &fakeClock{}

			r, err := newTestPipeline(svc, clock).AnalyzeEncoded(context.Background(), testImage, "en")
			require.Error(t, err)
			assert.Nil(t, r)

			assert.Equal(t, kind, KindOf(err))
			svc.AssertNumberOfCalls(t, "Generate", MaxAttempts)
			assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, clock.waits)
			assert.Equal(t, 3*time.Second, clock.Total())
		})
	}
}

func TestAnalyzeEncoded_InvalidResponseRetried(t *testing.T) {
	svc := new(mockService)
	svc.On("Generate", mock.Anything, mock.Anything).Return([]byte(`{"brand": "Rolex", "confidence": 250}`), nil).Once()
	svc.On("Generate", mock.Anything, mock.Anything).Return([]byte(submarinerJSON), nil).Once()
	clock := &fakeClock{}

	r, err := newTestPipeline(svc, clock).AnalyzeEncoded(context.Background(), testImage, "en")
	require.NoError(t, err)
	assert.Equal(t, "Submariner", r.Model)
	svc.AssertNumberOfCalls(t, "Generate", 2)
	assert.Equal(t, []time.Duration{time.Second}, clock.waits)
}

func TestAnalyzeEncoded_TerminalErrorsNotRetried(t *testing.T) {
	tests := []struct {
		name string
		ret  func(*mock.Call)
		want Kind
	}{
		{"network failure", func(c *mock.Call) { c.Return(nil, NewError(KindNetworkFailure, errors.New("no route to host"))) }, KindNetworkFailure},
		{"unclassified", func(c *mock.Call) { c.Return(nil, errors.New("weird")) }, KindUnclassified},
		{"empty result", func(c *mock.Call) { c.Return([]byte("null"), nil) }, KindEmptyResult},
		{"empty result tagged", func(c *mock.Call) { c.Return(nil, NewError(KindEmptyResult, errors.New("no candidates"))) }, KindEmptyResult},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			tt.ret(svc.On("Generate", mock.Anything, mock.Anything))
			clock := &fakeClock{}

			_, err := newTestPipeline(svc, clock).AnalyzeEncoded(context.Background(), testImage, "en")
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
			svc.AssertNumberOfCalls(t, "Generate", 1)
			assert.Empty(t, clock.waits)
		})
	}
}

func TestAnalyzeEncoded_EmptyImageShortCircuits(t *testing.T) {
	svc := new(mockService)

	_, err := newTestPipeline(svc, &fakeClock{}).AnalyzeEncoded(context.Background(), Image{}, "en")
	require.Error(t, err)
	assert.Equal(t, KindEmptyInput, KindOf(err))
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestAnalyzeEncoded_AttemptTimeout(t *testing.T) {
	svc := new(mockService)
	svc.On("Generate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)
	clock := &fakeClock{}

	_, err := newTestPipeline(svc, clock, WithAttemptTimeout(10*time.Millisecond)).
		AnalyzeEncoded(context.Background(), testImage, "en")
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
	svc.AssertNumberOfCalls(t, "Generate", 3)
}

func TestAnalyzeEncoded_CanceledDuringAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := new(mockService)
	svc.On("Generate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { cancel() }).
		Return(nil, NewError(KindTimeout, context.Canceled))
	clock := &fakeClock{}

	_, err := newTestPipeline(svc, clock).AnalyzeEncoded(ctx, testImage, "en")
	require.Error(t, err)
	assert.Equal(t, KindCanceled, KindOf(err))
	svc.AssertNumberOfCalls(t, "Generate", 1)
	assert.Empty(t, clock.waits)
}

func TestAnalyzeEncoded_CanceledDuringBackoff(t *testing.T) {
	svc := new(mockService)
	svc.On("Generate", mock.Anything, mock.Anything).Return(nil, NewError(KindRateLimited, errors.New("429")))
	clock := &fakeClock{result: context.Canceled}

	_, err := newTestPipeline(svc, clock).AnalyzeEncoded(context.Background(), testImage, "en")
	require.Error(t, err)
	assert.Equal(t, KindCanceled, KindOf(err))
	svc.AssertNumberOfCalls(t, "Generate", 1)
}

func TestAnalyze_NormalizerFallback(t *testing.T) {
	svc := new(mockService)
	svc.On("Generate", mock.Anything, mock.Anything).Return([]byte(submarinerJSON), nil).Once()
	norm := &stubNormalizer{err: errors.New("unsupported format")}
	enc := &stubEncoder{encoded: testImage.Data}

	p := NewPipeline(svc, norm, enc, WithSleeper((&fakeClock{}).Sleep))
	r, err := p.Analyze(context.Background(), "/photos/watch.heic", "en")
	require.NoError(t, err)

	assert.Equal(t, "Rolex", r.Brand)
	assert.Equal(t, []string{"/photos/watch.heic"}, norm.calls)
	assert.Equal(t, []string{"/photos/watch.heic"}, enc.calls)
	assert.Empty(t, norm.released)
}

func TestAnalyze_UsesAndReleasesNormalizedImage(t *testing.T) {
	svc := new(mockService)
	svc.On("Generate", mock.Anything, mock.Anything).Return([]byte(submarinerJSON), nil).Once()
	norm := &stubNormalizer{out: "/tmp/watch-normalized-1.jpg"}
	enc := &stubEncoder{encoded: testImage.Data}

	p := NewPipeline(svc, norm, enc, WithSleeper((&fakeClock{}).Sleep))
	_, err := p.Analyze(context.Background(), "/photos/watch.jpg", "en")
	require.NoError(t, err)

	assert.Equal(t, []string{"/tmp/watch-normalized-1.jpg"}, enc.calls)
	assert.Equal(t, []string{"/tmp/watch-normalized-1.jpg"}, norm.released)
}

func TestAnalyze_EmptyReference(t *testing.T) {
	svc := new(mockService)
	enc := &stubEncoder{encoded: testImage.Data}

	_, err := NewPipeline(svc, nil, enc).Analyze(context.Background(), "", "en")
	require.Error(t, err)
	assert.Equal(t, KindEmptyInput, KindOf(err))
	assert.Empty(t, enc.calls)
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestAnalyze_EncoderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"missing", imaging.ErrImageNotFound, KindImageReadFailure},
		{"unreadable", imaging.ErrImageUnreadable, KindImageReadFailure},
		{"empty", imaging.ErrEmptyImage, KindEmptyInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			enc := &stubEncoder{err: tt.err}

			_, err := NewPipeline(svc, nil, enc).Analyze(context.Background(), "/photos/watch.jpg", "en")
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
			assert.ErrorIs(t, err, tt.err)
			svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestNewPipeline_DefaultKnowledge(t *testing.T) {
	p := NewPipeline(new(mockService), nil, &stubEncoder{})
	assert.Equal(t, catalog.Default.KnowledgeBase(), p.knowledge)
	assert.Equal(t, MaxAttempts, p.maxAttempts)
	assert.Equal(t, DefaultAttemptTimeout, p.attemptTimeout)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
