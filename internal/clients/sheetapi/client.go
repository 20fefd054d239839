package sheetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/sirupsen/logrus"
)

const maxResponseBytes = 8 << 20

type client struct {
	httpClient *http.Client
	endpoint   string
	log        logrus.FieldLogger
}

type Config struct {
	HttpClient *http.Client
	Endpoint   string // Required, full URL of the collection
	Logger     logrus.FieldLogger
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("sheetapi config is required")
	}

	if cfg.Endpoint == "" {
		return nil, dnderr.InvalidArgument("sheetapi endpoint is required")
	}

	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, dnderr.InvalidArgumentf("invalid sheetapi endpoint %q", cfg.Endpoint)
	}

	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &client{
		httpClient: httpClient,
		endpoint:   u.String(),
		log:        log.WithField("endpoint", u.Redacted()),
	}, nil
}

func (c *client) Fetch(ctx context.Context) ([]*character.Character, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to build fetch request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, dnderr.Unavailable(err, "failed to fetch characters")
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, dnderr.Unavailable(err, "failed to read characters response")
	}

	chars, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	c.log.WithField("count", len(chars)).Debug("Fetched characters")
	return chars, nil
}

func (c *client) Replace(ctx context.Context, chars []*character.Character) error {
	if chars == nil {
		chars = []*character.Character{}
	}

	payload, err := json.Marshal(chars)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal characters")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return dnderr.Wrap(err, "failed to build save request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dnderr.Unavailable(err, "failed to save characters")
	}
	defer resp.Body.Close()

	// drain so the connection can be reused; the body itself is not used
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if err := checkStatus(resp); err != nil {
		return err
	}

	c.log.WithField("count", len(chars)).Debug("Saved characters")
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return dnderr.Unavailable(nil, fmt.Sprintf("character endpoint answered %s", resp.Status)).
		WithMeta("status", resp.StatusCode)
}

// decodeEnvelope requires a "body" field. A null body is an empty collection.
func decodeEnvelope(data []byte) ([]*character.Character, error) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, dnderr.Unavailable(err, "malformed characters response")
	}

	if envelope.Body == nil {
		return nil, dnderr.Unavailable(nil, "malformed characters response: missing body")
	}

	var chars []*character.Character
	if err := json.Unmarshal(envelope.Body, &chars); err != nil {
		return nil, dnderr.Unavailable(err, "malformed characters response")
	}

	if chars == nil {
		chars = []*character.Character{}
	}

	for i, char := range chars {
		if char == nil {
			return nil, dnderr.Unavailable(nil, "malformed characters response: null character").
				WithMeta("index", i)
		}
	}

	return chars, nil
}
