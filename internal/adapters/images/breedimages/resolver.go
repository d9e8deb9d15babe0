package breedimages

import (
	"context"
	"fmt"
	"time"

	"vet-clinic-api/internal/platform/httpclient"
	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/ports/images"
)

const (
	PlaceholderDog     = "https://via.placeholder.com/200?text=Perro"
	PlaceholderCat     = "https://via.placeholder.com/200?text=Gato"
	PlaceholderGeneric = "https://via.placeholder.com/200?text=Mascota"
)

// Placeholder devuelve la imagen por defecto de la especie.
func Placeholder(s images.Species) string {
	switch s {
	case images.SpeciesDog:
		return PlaceholderDog
	case images.SpeciesCat:
		return PlaceholderCat
	default:
		return PlaceholderGeneric
	}
}

// Policy: intentos totales (no reintentos), tope por intento y espera fija entre intentos.
type Policy struct {
	MaxAttempts    int
	AttemptTimeout time.Duration
	Backoff        time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, AttemptTimeout: 5 * time.Second, Backoff: time.Second}
}

// WorstCase es lo máximo que puede bloquear Resolve: todos los intentos con
// timeout, las esperas entre ellos y la búsqueda genérica de gatos.
func (p Policy) WorstCase() time.Duration {
	if p.MaxAttempts <= 0 {
		return 0
	}
	n := time.Duration(p.MaxAttempts)
	return (n+1)*p.AttemptTimeout + (n-1)*p.Backoff
}

type Config struct {
	DogBaseURL string
	CatBaseURL string
	CatAPIKey  string
	Policy     Policy
}

// Resolver implementa images.BreedImageResolver.
type Resolver struct {
	dog        FetchFunc
	cat        FetchFunc
	catGeneric FetchFunc
	policy     Policy
	sleep      func(context.Context, time.Duration)
	log        logger.Logger
}

var _ images.BreedImageResolver = (*Resolver)(nil)

// New arma el resolver contra dog.ceo y thecatapi.
func New(c *httpclient.Client, cfg Config, log logger.Logger) *Resolver {
	if c == nil {
		c = httpclient.New(0)
	}
	cat := TheCatAPI(c, cfg.CatBaseURL, cfg.CatAPIKey)
	return NewWithSources(cfg.Policy, DogCEO(c, cfg.DogBaseURL), cat, func(ctx context.Context, _ string) (string, error) {
		return cat(ctx, "")
	}, log)
}

// NewWithSources permite inyectar las fuentes (tests, otras APIs).
// Cualquier fuente nil hace que esa especie vaya directo al placeholder.
func NewWithSources(p Policy, dog, cat, catGeneric FetchFunc, log logger.Logger) *Resolver {
	def := DefaultPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.AttemptTimeout <= 0 {
		p.AttemptTimeout = def.AttemptTimeout
	}
	if p.Backoff < 0 {
		p.Backoff = 0
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{
		dog:        dog,
		cat:        cat,
		catGeneric: catGeneric,
		policy:     p,
		sleep:      sleepCtx,
		log:        log,
	}
}

type stateKind int

const (
	stateAttempting stateKind = iota
	stateFallback
	stateDone
)

type state struct {
	kind    stateKind
	attempt int // 1-based, solo en stateAttempting
	url     string
}

// Resolve nunca falla. Los intentos usan un ctx desacoplado del request
// (no se cortan si el cliente se va), acotados solo por AttemptTimeout.
func (r *Resolver) Resolve(ctx context.Context, species images.Species, breed string) (url string) {
	placeholder := Placeholder(species)
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("breed image resolver panic", map[string]any{"panic": fmt.Sprint(rec)})
			url = placeholder
		}
	}()

	var primary, fallback FetchFunc
	switch species {
	case images.SpeciesDog:
		primary = r.dog
	case images.SpeciesCat:
		primary, fallback = r.cat, r.catGeneric
	}
	if primary == nil {
		return placeholder
	}

	base := context.WithoutCancel(ctx)
	st := state{kind: stateAttempting, attempt: 1}

	for st.kind != stateDone {
		switch st.kind {
		case stateAttempting:
			got, err := r.try(base, primary, breed)
			if err == nil {
				st = state{kind: stateDone, url: got}
				continue
			}
			r.log.Debug("breed image attempt failed", map[string]any{
				"species": string(species),
				"breed":   breed,
				"attempt": st.attempt,
				"error":   err,
			})
			if st.attempt >= r.policy.MaxAttempts {
				if fallback != nil {
					st = state{kind: stateFallback}
				} else {
					st = state{kind: stateDone, url: placeholder}
				}
				continue
			}
			r.sleep(base, r.policy.Backoff)
			st = state{kind: stateAttempting, attempt: st.attempt + 1}

		case stateFallback:
			got, err := r.try(base, fallback, "")
			if err != nil {
				r.log.Debug("breed image fallback failed", map[string]any{"species": string(species), "error": err})
				got = placeholder
			}
			st = state{kind: stateDone, url: got}
		}
	}

	return st.url
}

func (r *Resolver) try(base context.Context, fetch FetchFunc, breed string) (string, error) {
	ctx, cancel := context.WithTimeout(base, r.policy.AttemptTimeout)
	defer cancel()
	got, err := fetch(ctx, breed)
	if err == nil && got == "" {
		err = ErrNoImage
	}
	return got, err
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
