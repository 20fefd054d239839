package dnd5e

import (
	"context"
	"net/http"
	"net/url"

	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
)

// proficiencyAPI is the slice of the upstream client used here
type proficiencyAPI interface {
	GetProficiency(key string) (*apiEntities.Proficiency, error)
}

type client struct {
	api proficiencyAPI
}

type Config struct {
	HttpClient *http.Client
	// BaseURL points requests at a mirror of the public API. Only scheme
	// and host are taken from it.
	BaseURL string
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("dnd5e client config is required")
	}

	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil || base.Scheme == "" || base.Host == "" {
			return nil, dnderr.InvalidArgumentf("invalid dnd5e base url %q", cfg.BaseURL)
		}
		withBase := *httpClient
		withBase.Transport = &hostRewriter{base: base, next: httpClient.Transport}
		httpClient = &withBase
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: httpClient,
	})
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to create dnd5e api client")
	}

	return &client{
		api: dndClient,
	}, nil
}

func (c *client) GetProficiency(ctx context.Context, key string) (*Proficiency, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("proficiency key is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	response, err := c.api.GetProficiency(key)
	if err != nil {
		return nil, dnderr.Unavailable(err, "failed to get proficiency").
			WithMeta("key", key)
	}
	if response == nil {
		return nil, dnderr.NotFoundf("proficiency %q not found", key).
			WithMeta("key", key)
	}

	return apiProficiencyToProficiency(response), nil
}

func apiProficiencyToProficiency(input *apiEntities.Proficiency) *Proficiency {
	return &Proficiency{
		Key:     input.Key,
		Name:    input.Name,
		IsSkill: input.Type == apiEntities.ProficiencyTypeSkill,
	}
}

// hostRewriter sends every request to base's scheme and host
type hostRewriter struct {
	base *url.URL
	next http.RoundTripper
}

func (t *hostRewriter) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}

	out := req.Clone(req.Context())
	out.URL.Scheme = t.base.Scheme
	out.URL.Host = t.base.Host
	out.Host = t.base.Host

	return next.RoundTrip(out)
}
