// Package vies validates EU VAT numbers against the European Commission's
// VIES REST service.
package vies

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/finecut/platform/internal/config"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/httpclient"
	"github.com/finecut/platform/internal/logger"
	"golang.org/x/time/rate"
)

// vatNumberPattern matches a country prefix followed by the national part.
// The national format varies per member state; VIES does the real check.
var vatNumberPattern = regexp.MustCompile(`^[A-Z]{2}[0-9A-Za-z+*.]{2,12}$`)

// ValidationResult is the outcome of a VIES lookup
type ValidationResult struct {
	CountryCode string `json:"country_code"`
	VATNumber   string `json:"vat_number"`
	Valid       bool   `json:"valid"`
	Name        string `json:"name,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Client validates VAT numbers. Lookups are rate limited client-side: VIES
// blocks callers that exceed its fair-use limits, and a blocked IP takes the
// whole checkout's VAT validation down with it.
type Client struct {
	http    httpclient.Client
	limiter *rate.Limiter
	baseURL string
	logger  *logger.Logger
}

// viesResponse mirrors the VIES REST check-vat-number response
type viesResponse struct {
	CountryCode string `json:"countryCode"`
	VATNumber   string `json:"vatNumber"`
	Valid       bool   `json:"valid"`
	Name        string `json:"name"`
	Address     string `json:"address"`
}

// NewClient creates a new VIES client
func NewClient(http httpclient.Client, cfg *config.Configuration, logger *logger.Logger) *Client {
	rps := cfg.VIES.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		http:    http,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		baseURL: strings.TrimRight(cfg.VIES.BaseURL, "/"),
		logger:  logger,
	}
}

// ValidateVATNumber checks a full VAT number (country prefix included, e.g.
// "GB123456789") against VIES.
func (c *Client) ValidateVATNumber(ctx context.Context, vatNumber string) (*ValidationResult, error) {
	vatNumber = strings.ToUpper(strings.ReplaceAll(vatNumber, " ", ""))
	if !vatNumberPattern.MatchString(vatNumber) {
		return nil, ierr.NewError("malformed VAT number").
			WithHint("VAT number must start with a two-letter country code").
			WithReportableDetails(map[string]interface{}{
				"vat_number": vatNumber,
			}).
			Mark(ierr.ErrValidation)
	}

	countryCode := vatNumber[:2]
	nationalNumber := vatNumber[2:]

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, ierr.WithError(err).
			WithHint("VAT validation was cancelled").
			Mark(ierr.ErrSystem)
	}

	url := fmt.Sprintf("%s/ms/%s/vat/%s", c.baseURL, countryCode, nationalNumber)
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL:    url,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, ierr.NewError("VIES lookup failed").
			WithHint("The VAT validation service is unavailable").
			WithReportableDetails(map[string]interface{}{
				"status_code":  resp.StatusCode,
				"country_code": countryCode,
			}).
			Mark(ierr.ErrSystem)
	}

	var parsed viesResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unexpected response from the VAT validation service").
			Mark(ierr.ErrSystem)
	}

	c.logger.Debugw("VIES lookup completed",
		"country_code", countryCode,
		"valid", parsed.Valid)

	return &ValidationResult{
		CountryCode: countryCode,
		VATNumber:   vatNumber,
		Valid:       parsed.Valid,
		Name:        parsed.Name,
		Address:     parsed.Address,
	}, nil
}
