package trigger

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchgen/internal/generation"
)

const placeholder = "/assets/placeholder.png"

// stubFetcher returns a canned result. When gate is non-nil Fetch blocks until it is closed.
type stubFetcher struct {
	res   generation.Result
	err   error
	gate  chan struct{}
	calls atomic.Int32
	panic bool
}

func (s *stubFetcher) Fetch(ctx context.Context) (generation.Result, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	if s.panic {
		panic("fetcher exploded")
	}
	return s.res, s.err
}

func newTestTrigger(t *testing.T, f generation.Fetcher, opts ...Option) (*Trigger, *Page, *bytes.Buffer) {
	t.Helper()
	page := NewPage("")
	h, err := Resolve(page.Elements(DefaultIDs()), DefaultIDs())
	require.NoError(t, err)

	var buf bytes.Buffer
	opts = append([]Option{WithLogger(zerolog.New(&buf))}, opts...)
	return New(h, f, placeholder, opts...), page, &buf
}

func countLines(buf *bytes.Buffer, substr string) int {
	n := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func TestBegin_ResetsSurfaceAndShowsIndicator(t *testing.T) {
	f := &stubFetcher{res: generation.Result{ImageURL: "/img/cat.png"}}
	tr, page, _ := newTestTrigger(t, f)
	page.Image.SetImage("/img/previous.png")

	a := tr.Begin()
	assert.Equal(t, placeholder, page.Image.Ref())
	assert.True(t, page.Overlay.Visible())
	assert.Zero(t, f.calls.Load(), "request must not be issued before Complete")

	out := a.Complete(context.Background())
	assert.Equal(t, KindSuccess, out.Kind)
	assert.Equal(t, "/img/cat.png", page.Image.Ref())
	assert.False(t, page.Overlay.Visible())
}

func TestActivate_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		fetcher     *stubFetcher
		wantRef     string
		wantKind    Kind
		wantMissing int
		wantFailure int
	}{
		{
			name:     "image url",
			fetcher:  &stubFetcher{res: generation.Result{ImageURL: "/img/cat.png"}},
			wantRef:  "/img/cat.png",
			wantKind: KindSuccess,
		},
		{
			name:        "empty object",
			fetcher:     &stubFetcher{},
			wantRef:     placeholder,
			wantKind:    KindMissingResult,
			wantMissing: 1,
		},
		{
			name:        "empty image url",
			fetcher:     &stubFetcher{res: generation.Result{ImageURL: ""}},
			wantRef:     placeholder,
			wantKind:    KindMissingResult,
			wantMissing: 1,
		},
		{
			name:        "network error",
			fetcher:     &stubFetcher{err: &generation.RequestError{Err: errors.New("connection refused")}},
			wantRef:     placeholder,
			wantKind:    KindRequestFailure,
			wantFailure: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, page, buf := newTestTrigger(t, tt.fetcher)

			out := tr.Activate(context.Background())

			assert.Equal(t, tt.wantKind, out.Kind)
			assert.Equal(t, tt.wantRef, page.Image.Ref())
			assert.Equal(t, tt.wantRef, out.ImageRef)
			assert.False(t, page.Overlay.Visible())
			assert.Equal(t, tt.wantMissing, countLines(buf, `"kind":"missing_result"`))
			assert.Equal(t, tt.wantFailure, countLines(buf, `"kind":"request_failure"`))
			if tt.wantFailure > 0 {
				assert.Contains(t, buf.String(), "connection refused")
				assert.True(t, generation.IsRequestError(out.Err))
			}
			if tt.wantMissing > 0 {
				assert.ErrorIs(t, out.Err, generation.ErrMissingResult)
			}
		})
	}
}

func TestActivate_PanicStillHidesIndicator(t *testing.T) {
	tr, page, _ := newTestTrigger(t, &stubFetcher{panic: true})

	assert.Panics(t, func() { tr.Activate(context.Background()) })
	assert.False(t, page.Overlay.Visible())
	shows, hides := page.Overlay.Counts()
	assert.Equal(t, 1, shows)
	assert.Equal(t, 1, hides)
}

func TestActivate_RepeatedActivationsAreIndependent(t *testing.T) {
	f := &stubFetcher{res: generation.Result{ImageURL: "/img/cat.png"}}
	var seen []Outcome
	tr, page, _ := newTestTrigger(t, f, WithObserver(func(o Outcome) { seen = append(seen, o) }))

	for i := 0; i < 3; i++ {
		a := tr.Begin()
		require.Equal(t, placeholder, page.Image.Ref(), "activation %d must reset to placeholder", i)
		require.True(t, page.Overlay.Visible())
		a.Complete(context.Background())
		require.Equal(t, "/img/cat.png", page.Image.Ref())
	}

	assert.Equal(t, 6, page.Image.Sets())
	require.Len(t, seen, 3)
	for i, o := range seen {
		assert.Equal(t, uint64(i+1), o.Seq)
	}
}

func TestActivate_OverlappingByDefault(t *testing.T) {
	f := &stubFetcher{res: generation.Result{ImageURL: "/img/cat.png"}, gate: make(chan struct{})}
	tr, page, _ := newTestTrigger(t, f)

	a1 := tr.Begin()
	a2 := tr.Begin()

	done := make(chan Outcome, 2)
	go func() { done <- a1.Complete(context.Background()) }()
	go func() { done <- a2.Complete(context.Background()) }()
	close(f.gate)

	for i := 0; i < 2; i++ {
		select {
		case o := <-done:
			assert.Equal(t, KindSuccess, o.Kind)
		case <-time.After(2 * time.Second):
			t.Fatal("activation did not settle")
		}
	}
	assert.Equal(t, int32(2), f.calls.Load())
	assert.False(t, page.Overlay.Visible())
}

func TestActivate_SingleFlightSkipsOverlap(t *testing.T) {
	f := &stubFetcher{res: generation.Result{ImageURL: "/img/cat.png"}, gate: make(chan struct{})}
	tr, page, _ := newTestTrigger(t, f, WithSingleFlight(true))

	a1 := tr.Begin()
	setsAfterFirst := page.Image.Sets()

	a2 := tr.Begin()
	out2 := a2.Complete(context.Background())
	assert.Equal(t, KindSkipped, out2.Kind)
	assert.False(t, out2.Placeholder())
	assert.Equal(t, setsAfterFirst, page.Image.Sets(), "skipped activation must not touch the surface")
	assert.True(t, page.Overlay.Visible(), "first request still in flight")

	close(f.gate)
	out1 := a1.Complete(context.Background())
	assert.Equal(t, KindSuccess, out1.Kind)
	assert.False(t, page.Overlay.Visible())

	// The guard is released once the first request settles.
	out3 := tr.Activate(context.Background())
	assert.Equal(t, KindSuccess, out3.Kind)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestBind_PressRunsActivation(t *testing.T) {
	f := &stubFetcher{res: generation.Result{ImageURL: "/img/cat.png"}, gate: make(chan struct{})}
	tr, page, _ := newTestTrigger(t, f)

	settled := make(chan Outcome, 1)
	tr.Bind(context.Background(), func(o Outcome) { settled <- o })

	page.Button.Press()
	assert.Equal(t, placeholder, page.Image.Ref())
	assert.True(t, page.Overlay.Visible())

	close(f.gate)
	select {
	case o := <-settled:
		assert.Equal(t, KindSuccess, o.Kind)
		assert.False(t, page.Overlay.Visible(), "indicator hidden before onSettled runs")
		assert.Equal(t, "/img/cat.png", page.Image.Ref())
	case <-time.After(2 * time.Second):
		t.Fatal("activation did not settle")
	}
}

func TestBind_PanickingFetcherSettlesAsRequestFailure(t *testing.T) {
	f := &stubFetcher{panic: true}
	var recorded []Outcome
	tr, page, buf := newTestTrigger(t, f, WithObserver(func(o Outcome) { recorded = append(recorded, o) }))

	settled := make(chan Outcome, 1)
	tr.Bind(context.Background(), func(o Outcome) { settled <- o })

	page.Button.Press()
	select {
	case o := <-settled:
		assert.Equal(t, KindRequestFailure, o.Kind)
		assert.True(t, o.Placeholder())
		assert.Equal(t, placeholder, o.ImageRef)
		assert.Contains(t, o.ErrDetail, "fetcher exploded")
	case <-time.After(2 * time.Second):
		t.Fatal("activation did not settle")
	}

	assert.False(t, page.Overlay.Visible())
	assert.Equal(t, placeholder, page.Image.Ref())
	assert.Equal(t, 1, countLines(buf, "error fetching generated image"))
	assert.Contains(t, buf.String(), `"kind":"request_failure"`)
	require.Len(t, recorded, 1)
	assert.Equal(t, KindRequestFailure, recorded[0].Kind)
}

func TestActivate_WithHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("case") {
		case "empty":
			_, _ = w.Write([]byte(`{}`))
		case "error":
			http.Error(w, "boom", http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`{"imageUrl":"/img/cat.png"}`))
		}
	}))
	defer srv.Close()

	tests := []struct {
		query    string
		wantRef  string
		wantKind Kind
	}{
		{query: "ok", wantRef: "/img/cat.png", wantKind: KindSuccess},
		{query: "empty", wantRef: placeholder, wantKind: KindMissingResult},
		{query: "error", wantRef: placeholder, wantKind: KindRequestFailure},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			client := generation.NewClient(srv.URL+"/api/generate?case="+tt.query, time.Second)
			tr, page, _ := newTestTrigger(t, client)

			out := tr.Activate(context.Background())
			assert.Equal(t, tt.wantKind, out.Kind)
			assert.Equal(t, tt.wantRef, page.Image.Ref())
			assert.False(t, page.Overlay.Visible())
		})
	}
}
