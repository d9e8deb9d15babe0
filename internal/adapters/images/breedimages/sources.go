package breedimages

import (
	"context"
	"errors"
	"math/rand"
	"net/url"
	"strings"

	"vet-clinic-api/internal/platform/httpclient"
)

const (
	DefaultDogBaseURL = "https://dog.ceo/api"
	DefaultCatBaseURL = "https://api.thecatapi.com/v1"
)

var ErrNoImage = errors.New("breedimages: empty payload")

// FetchFunc hace UN intento contra la fuente. Cualquier error cuenta como fallo del intento.
type FetchFunc func(ctx context.Context, breed string) (string, error)

type dogResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
}

type catImage struct {
	URL string `json:"url"`
}

// DogCEO consulta /breed/{raza}/images y elige una al azar.
func DogCEO(c *httpclient.Client, baseURL string) FetchFunc {
	base := strings.TrimRight(orDefault(baseURL, DefaultDogBaseURL), "/")
	return func(ctx context.Context, breed string) (string, error) {
		slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(breed)), " ", "-")
		if slug == "" {
			return "", ErrNoImage
		}

		var out dogResponse
		if err := c.GetJSON(ctx, base+"/breed/"+url.PathEscape(slug)+"/images", nil, &out); err != nil {
			return "", err
		}
		if out.Status != "success" || len(out.Message) == 0 {
			return "", ErrNoImage
		}
		return out.Message[rand.Intn(len(out.Message))], nil
	}
}

// TheCatAPI busca por breed_ids. Con breed vacío hace la búsqueda genérica.
func TheCatAPI(c *httpclient.Client, baseURL, apiKey string) FetchFunc {
	base := strings.TrimRight(orDefault(baseURL, DefaultCatBaseURL), "/")
	return func(ctx context.Context, breed string) (string, error) {
		q := url.Values{}
		q.Set("limit", "1")
		if b := strings.ToLower(strings.TrimSpace(breed)); b != "" {
			q.Set("breed_ids", b)
		}

		var headers map[string]string
		if apiKey != "" {
			headers = map[string]string{"x-api-key": apiKey}
		}

		var out []catImage
		if err := c.GetJSON(ctx, base+"/images/search?"+q.Encode(), headers, &out); err != nil {
			return "", err
		}
		if len(out) == 0 || strings.TrimSpace(out[0].URL) == "" {
			return "", ErrNoImage
		}
		return out[0].URL, nil
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
