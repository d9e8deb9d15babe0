package breedimages

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-api/internal/platform/httpclient"
	"vet-clinic-api/internal/ports/images"
)

var fastPolicy = Policy{MaxAttempts: 3, AttemptTimeout: 50 * time.Millisecond, Backoff: 5 * time.Millisecond}

func failing(counter *int32) FetchFunc {
	return func(ctx context.Context, _ string) (string, error) {
		atomic.AddInt32(counter, 1)
		return "", errors.New("upstream down")
	}
}

func TestPolicy_WorstCase(t *testing.T) {
	// 3 intentos de 5s, 2 esperas de 1s y la búsqueda genérica de gatos.
	assert.Equal(t, 22*time.Second, DefaultPolicy().WorstCase())
	assert.Zero(t, Policy{}.WorstCase())
}

func TestResolve_DogTotalFailure_Placeholder(t *testing.T) {
	var calls int32
	r := NewWithSources(fastPolicy, failing(&calls), nil, nil, nil)

	got := r.Resolve(context.Background(), images.SpeciesDog, "labrador")
	assert.Equal(t, PlaceholderDog, got)
	assert.EqualValues(t, 3, calls)
}

func TestResolve_CatFallsBackToGenericOnce(t *testing.T) {
	var breedCalls, genericCalls int32
	r := NewWithSources(fastPolicy, nil, failing(&breedCalls), func(ctx context.Context, breed string) (string, error) {
		atomic.AddInt32(&genericCalls, 1)
		assert.Empty(t, breed)
		return "https://cdn.example/cat.jpg", nil
	}, nil)

	got := r.Resolve(context.Background(), images.SpeciesCat, "siam")
	assert.Equal(t, "https://cdn.example/cat.jpg", got)
	assert.EqualValues(t, 3, breedCalls)
	assert.EqualValues(t, 1, genericCalls)
}

func TestResolve_CatEverythingFails(t *testing.T) {
	var breedCalls, genericCalls int32
	r := NewWithSources(fastPolicy, nil, failing(&breedCalls), failing(&genericCalls), nil)

	assert.Equal(t, PlaceholderCat, r.Resolve(context.Background(), images.SpeciesCat, "siam"))
	assert.EqualValues(t, 3, breedCalls)
	assert.EqualValues(t, 1, genericCalls)
}

func TestResolve_SucceedsOnSecondAttempt(t *testing.T) {
	var calls int32
	r := NewWithSources(fastPolicy, func(ctx context.Context, _ string) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "", errors.New("flaky")
		}
		return "https://images.dog.ceo/x.jpg", nil
	}, nil, nil, nil)

	assert.Equal(t, "https://images.dog.ceo/x.jpg", r.Resolve(context.Background(), images.SpeciesDog, "beagle"))
	assert.EqualValues(t, 2, calls)
}

func TestResolve_OtherSpeciesNoNetwork(t *testing.T) {
	var calls int32
	r := NewWithSources(fastPolicy, failing(&calls), failing(&calls), failing(&calls), nil)

	assert.Equal(t, PlaceholderGeneric, r.Resolve(context.Background(), images.Species("Conejo"), "enano"))
	assert.Zero(t, calls)
}

func TestResolve_AttemptTimeoutBoundsTotal(t *testing.T) {
	hang := func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}
	r := NewWithSources(fastPolicy, hang, nil, nil, nil)

	start := time.Now()
	got := r.Resolve(context.Background(), images.SpeciesDog, "boxer")
	elapsed := time.Since(start)

	assert.Equal(t, PlaceholderDog, got)
	// 3*50ms + 2*5ms, con margen
	assert.Less(t, elapsed, time.Second)
	assert.GreaterOrEqual(t, elapsed, 150*time.Millisecond)
}

func TestResolve_IgnoresCallerCancellation(t *testing.T) {
	var calls int32
	r := NewWithSources(fastPolicy, failing(&calls), nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, PlaceholderDog, r.Resolve(ctx, images.SpeciesDog, "boxer"))
	assert.EqualValues(t, 3, calls)
}

func TestResolve_PanicBecomesPlaceholder(t *testing.T) {
	r := NewWithSources(fastPolicy, func(context.Context, string) (string, error) {
		panic("boom")
	}, nil, nil, nil)

	assert.Equal(t, PlaceholderDog, r.Resolve(context.Background(), images.SpeciesDog, "boxer"))
}

func TestNew_AgainstFakeUpstreams(t *testing.T) {
	var dogHits, catHits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/dog/breed/"):
			atomic.AddInt32(&dogHits, 1)
			assert.Equal(t, "/dog/breed/golden-retriever/images", r.URL.Path)
			_, _ = w.Write([]byte(`{"status":"success","message":["https://images.dog.ceo/golden.jpg"]}`))
		case r.URL.Path == "/cat/images/search":
			atomic.AddInt32(&catHits, 1)
			if r.URL.Query().Get("breed_ids") != "" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`[{"url":"https://cdn2.thecatapi.com/any.jpg"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	r := New(httpclient.New(time.Second), Config{
		DogBaseURL: srv.URL + "/dog",
		CatBaseURL: srv.URL + "/cat",
		Policy:     fastPolicy,
	}, nil)

	assert.Equal(t, "https://images.dog.ceo/golden.jpg", r.Resolve(context.Background(), images.SpeciesDog, "Golden Retriever"))
	assert.EqualValues(t, 1, dogHits)

	assert.Equal(t, "https://cdn2.thecatapi.com/any.jpg", r.Resolve(context.Background(), images.SpeciesCat, "Siam"))
	assert.EqualValues(t, 4, catHits)
}

func TestDogCEO_NonSuccessStatusIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","message":[]}`))
	}))
	defer srv.Close()

	_, err := DogCEO(httpclient.New(time.Second), srv.URL)(context.Background(), "pug")
	require.ErrorIs(t, err, ErrNoImage)
}
