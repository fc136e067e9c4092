// Package client is a typed HTTP client for the visa portal API, plus the
// shaping logic the browsing surfaces apply to fetched data.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    trimmed,
		httpClient: httpClient,
	}
}

// Visa mirrors the gateway's wire format for a visa offering.
type Visa struct {
	ID                string   `json:"_id"`
	CountryImage      string   `json:"countryImage"`
	Country           string   `json:"country"`
	VisaType          string   `json:"visa_type"`
	ProcessingTime    string   `json:"processing_time"`
	RequiredDocuments []string `json:"required_documents"`
	Description       string   `json:"description"`
	AgeRestriction    int      `json:"age_restriction"`
	Fee               float64  `json:"fee"`
	Validity          string   `json:"validity"`
	ApplicationMethod string   `json:"application_method"`
	AddedBy           string   `json:"addedBy"`
}

// Application mirrors the gateway's wire format for a visa application.
type Application struct {
	ID                 string  `json:"_id"`
	VisaID             string  `json:"visaId"`
	UserEmail          string  `json:"userEmail"`
	ApplicantFirstName string  `json:"applicantFirstName"`
	ApplicantLastName  string  `json:"applicantLastName"`
	ApplicantEmail     string  `json:"applicantEmail"`
	Country            string  `json:"country"`
	VisaType           string  `json:"visaType"`
	Fee                float64 `json:"fee"`
	Validity           string  `json:"validity"`
	CountryImage       string  `json:"countryImage"`
	ApplicationMethod  string  `json:"applicationMethod"`
	Status             string  `json:"status"`
	AppliedDate        string  `json:"appliedDate"`
}

type AddVisaInput struct {
	CountryImage      string   `json:"countryImage"`
	Country           string   `json:"country"`
	VisaType          string   `json:"visaType"`
	ProcessingTime    string   `json:"processingTime"`
	RequiredDocuments []string `json:"requiredDocuments"`
	Description       string   `json:"description"`
	AgeRestriction    int      `json:"ageRestriction"`
	Fee               float64  `json:"fee"`
	Validity          string   `json:"validity"`
	ApplicationMethod string   `json:"applicationMethod"`
	AddedBy           string   `json:"addedBy"`
}

type CreateApplicationInput struct {
	VisaID             string `json:"visaId"`
	UserEmail          string `json:"userEmail"`
	ApplicantFirstName string `json:"applicantFirstName"`
	ApplicantLastName  string `json:"applicantLastName"`
	Status             string `json:"status"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type addVisaResponse struct {
	Message string `json:"message"`
	VisaID  string `json:"visaId"`
}

type createApplicationResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"applicationId"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) ListVisas(ctx context.Context, addedBy string) ([]Visa, error) {
	path := "/visas"
	if addedBy != "" {
		path += "?addedBy=" + url.QueryEscape(addedBy)
	}
	var visas []Visa
	if err := c.do(ctx, http.MethodGet, path, nil, &visas); err != nil {
		return nil, err
	}
	return visas, nil
}

func (c *Client) GetVisa(ctx context.Context, id string) (Visa, error) {
	var visa Visa
	if err := c.do(ctx, http.MethodGet, "/visas/"+url.PathEscape(id), nil, &visa); err != nil {
		return Visa{}, err
	}
	return visa, nil
}

func (c *Client) AddVisa(ctx context.Context, input AddVisaInput) (string, error) {
	var resp addVisaResponse
	if err := c.do(ctx, http.MethodPost, "/visas/add", input, &resp); err != nil {
		return "", err
	}
	return resp.VisaID, nil
}

// UpdateVisa sends only the given fields; the gateway leaves the rest alone.
func (c *Client) UpdateVisa(ctx context.Context, id string, fields map[string]interface{}) (UpdateResult, error) {
	var result UpdateResult
	if err := c.do(ctx, http.MethodPut, "/visas/"+url.PathEscape(id), fields, &result); err != nil {
		return UpdateResult{}, err
	}
	return result, nil
}

func (c *Client) DeleteVisa(ctx context.Context, id string) (DeleteResult, error) {
	var result DeleteResult
	if err := c.do(ctx, http.MethodDelete, "/visas/"+url.PathEscape(id), nil, &result); err != nil {
		return DeleteResult{}, err
	}
	return result, nil
}

func (c *Client) CreateApplication(ctx context.Context, input CreateApplicationInput) (string, error) {
	var resp createApplicationResponse
	if err := c.do(ctx, http.MethodPost, "/applications", input, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &APIError{StatusCode: http.StatusInternalServerError, Message: "Failed to create application."}
	}
	return resp.ApplicationID, nil
}

func (c *Client) ListApplications(ctx context.Context, userEmail string) ([]Application, error) {
	var applications []Application
	path := "/applications?userEmail=" + url.QueryEscape(userEmail)
	if err := c.do(ctx, http.MethodGet, path, nil, &applications); err != nil {
		return nil, err
	}
	return applications, nil
}

// DeleteApplication cancels an application. There is no confirmation step and
// no restore.
func (c *Client) DeleteApplication(ctx context.Context, id string) (DeleteResult, error) {
	var result DeleteResult
	if err := c.do(ctx, http.MethodDelete, "/applications/"+url.PathEscape(id), nil, &result); err != nil {
		return DeleteResult{}, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if err := json.Unmarshal(payload, &errResp); err != nil || errResp.Message == "" {
			errResp.Message = strings.TrimSpace(string(payload))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
