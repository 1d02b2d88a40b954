package keynote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"conferenceapi/internal/model"
)

// HTTPClient looks keynotes up over the keynote service REST API.
type HTTPClient struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPClient returns a client for baseURL. Each call is bounded by timeout.
// A nil client gets a default one with an OpenTelemetry-instrumented transport.
func NewHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  client,
	}
}

var _ Lookup = (*HTTPClient)(nil)

// keynoteResponse is the keynote service payload. Its field names differ from
// the ones model.Keynote renders.
type keynoteResponse struct {
	ID       int64  `json:"id"`
	Nom      string `json:"nom"`
	Prenom   string `json:"prenom"`
	Email    string `json:"email"`
	Fonction string `json:"fonction"`
}

func (r keynoteResponse) toModel() *model.Keynote {
	return &model.Keynote{
		ID:        r.ID,
		LastName:  r.Nom,
		FirstName: r.Prenom,
		Email:     r.Email,
		Role:      r.Fonction,
	}
}

// GetByID calls GET {baseURL}/api/keynotes/{id}.
func (c *HTTPClient) GetByID(ctx context.Context, id int64) (*model.Keynote, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	url := fmt.Sprintf("%s/api/keynotes/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, unavailable(id, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, unavailable(id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, notFound(id)
	case resp.StatusCode != http.StatusOK:
		return nil, unavailable(id, fmt.Errorf("keynote service returned status: %d", resp.StatusCode))
	}

	var body keynoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, unavailable(id, fmt.Errorf("decode keynote: %w", err))
	}
	return body.toModel(), nil
}
