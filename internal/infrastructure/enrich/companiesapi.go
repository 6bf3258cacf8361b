// Package enrich wraps thecompaniesapi.com company lookup.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cloud4wi/signup-service/internal/domain"
)

const defaultBaseURL = "https://api.thecompaniesapi.com"

// Client calls the by-email company endpoint. The token is a Basic
// credential issued by the provider; an empty token makes every call fail
// with a configuration error instead of leaking unauthenticated requests.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// companyEnvelope mirrors the fields we read from the provider response.
// Everything else passes through untouched on the raw path.
type companyEnvelope struct {
	Company struct {
		About struct {
			Name     string `json:"name"`
			Industry string `json:"industry"`
		} `json:"about"`
		Domain struct {
			Domain string `json:"domain"`
		} `json:"domain"`
		Locations struct {
			Headquarters struct {
				Country struct {
					Name string `json:"name"`
				} `json:"country"`
			} `json:"headquarters"`
		} `json:"locations"`
	} `json:"company"`
}

// Lookup fetches and flattens the company record for an email address.
func (c *Client) Lookup(ctx context.Context, email string) (domain.CompanyProfile, error) {
	status, body, err := c.Fetch(ctx, email)
	if err != nil {
		return domain.CompanyProfile{}, err
	}
	switch {
	case status == http.StatusNotFound:
		return domain.CompanyProfile{}, domain.ErrCompanyNotFound(email)
	case status != http.StatusOK:
		return domain.CompanyProfile{}, domain.ErrEnrichmentUnavailable(fmt.Errorf("enrich: upstream status %d", status))
	}

	var env companyEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return domain.CompanyProfile{}, domain.ErrEnrichmentUnavailable(fmt.Errorf("enrich: decode response: %w", err))
	}

	profile := domain.CompanyProfile{
		Name:     env.Company.About.Name,
		Industry: env.Company.About.Industry,
		Country:  env.Company.Locations.Headquarters.Country.Name,
		Domain:   env.Company.Domain.Domain,
	}
	if profile == (domain.CompanyProfile{}) {
		return domain.CompanyProfile{}, domain.ErrCompanyNotFound(email)
	}
	return profile, nil
}

// Fetch performs the upstream call and returns the raw status and body so
// the proxy endpoint can relay the provider payload verbatim.
func (c *Client) Fetch(ctx context.Context, email string) (int, []byte, error) {
	if c.token == "" {
		return 0, nil, domain.ErrNotConfigured("companies_api", errors.New("THE_COMPANIES_API_TOKEN is not set"))
	}

	endpoint := fmt.Sprintf("%s/v2/companies/by-email?email=%s", c.baseURL, url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, domain.ErrEnrichmentUnavailable(err)
	}
	req.Header.Set("Authorization", "Basic "+c.token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, domain.ErrEnrichmentUnavailable(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, domain.ErrEnrichmentUnavailable(err)
	}
	return res.StatusCode, body, nil
}
