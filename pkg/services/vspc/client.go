package vspc

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/vspc-reporter/pkg/models/api"
	"github.com/de-tools/vspc-reporter/pkg/services/auth"
)

const (
	companyListPath = "/uiapi/Company/GetCompanyList"
	reportListPath  = "/uiapi/Report/GetReports"
	locationsPath   = "/uiapi/Location/GetLocations"
	reportSavePath  = "/uiapi/Report/Save"
)

// Client is the authenticated surface of the console uiapi this tool uses.
type Client interface {
	GetCompanies(ctx context.Context) ([]api.Company, error)
	GetReports(ctx context.Context) ([]api.Report, error)
	GetLocations(ctx context.Context, companyID string) ([]api.Location, error)
	SaveReport(ctx context.Context, payload api.SaveReportRequest) (*api.SaveReportResult, error)
}

// Factory builds a Client for a console instance once credentials exist.
type Factory func(baseURL string, creds auth.Credentials) Client

type client struct {
	baseURL string
	creds   auth.Credentials
	http    *http.Client
}

// NewClient returns a uiapi client. TLS verification is disabled to match
// the self-signed certificates most console installs run with.
func NewClient(baseURL string, creds auth.Credentials) Client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

func (c *client) GetCompanies(ctx context.Context) ([]api.Company, error) {
	var resp struct {
		Data []api.Company `json:"data"`
	}
	if err := c.post(ctx, companyListPath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *client) GetReports(ctx context.Context) ([]api.Report, error) {
	var resp struct {
		Data []api.Report `json:"data"`
	}
	if err := c.post(ctx, reportListPath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *client) GetLocations(ctx context.Context, companyID string) ([]api.Location, error) {
	var resp struct {
		Data []api.Location `json:"data"`
	}
	req := api.GetLocationsRequest{CompanyID: companyID}
	if err := c.post(ctx, locationsPath, req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *client) SaveReport(ctx context.Context, payload api.SaveReportRequest) (*api.SaveReportResult, error) {
	var resp struct {
		Data api.SaveReportResult `json:"data"`
	}
	if err := c.post(ctx, reportSavePath, payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// post issues an authenticated JSON POST. The uiapi wants the bearer token,
// the session cookie and the x-ui-request marker on every call; a missing
// body still goes out as an empty JSON object.
func (c *client) post(ctx context.Context, path string, body any, out any) error {
	logger := zerolog.Ctx(ctx)

	if body == nil {
		body = struct{}{}
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", path, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.creds.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-ui-request", "true")
	req.Header.Set("Origin", c.baseURL)
	req.AddCookie(&http.Cookie{Name: "x-authorization", Value: c.creds.Cookie})

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	logger.Debug().Str("path", path).Int("status", resp.StatusCode).Msg("uiapi call completed")
	return nil
}
