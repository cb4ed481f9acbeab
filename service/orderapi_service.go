package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"dropship-invoicer/models"
)

// OrderAPIService is the HTTP client for the remote order service, the
// system of record for product descriptions and pricing.
// Implements OrderAPIServiceInterface
type OrderAPIService struct {
	baseURL    string
	username   string
	password   string
	pageSize   int
	httpClient *http.Client
	token      string
}

// NewOrderAPIService creates a new OrderAPIService. The access token is
// fetched lazily on the first lookup and kept for the rest of the cycle.
func NewOrderAPIService(baseURL, username, password string, pageSize int) *OrderAPIService {
	return &OrderAPIService{
		baseURL:  baseURL,
		username: username,
		password: password,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ensure OrderAPIService implements OrderAPIServiceInterface
var _ OrderAPIServiceInterface = (*OrderAPIService)(nil)

type tokenRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// authenticate fetches a bearer token from the order service.
func (s *OrderAPIService) authenticate(ctx context.Context) error {
	body, err := json.Marshal(tokenRequest{Username: s.username, Password: s.password})
	if err != nil {
		return fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/token", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to request access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("token endpoint returned an empty access token")
	}

	s.token = tok.AccessToken
	return nil
}

// GetOrderByReference looks up the remote order whose source order ID equals
// the reference. A non-200 status, an unparseable body, or an empty order
// list is an error; the expected case returns exactly one order.
func (s *OrderAPIService) GetOrderByReference(ctx context.Context, reference string) (*models.RemoteOrder, error) {
	if s.token == "" {
		if err := s.authenticate(ctx); err != nil {
			return nil, err
		}
	}

	lookupURL := fmt.Sprintf("%s/Orders?model.orderSourceOrderIDList=%s&model.pageSize=%d",
		s.baseURL, url.QueryEscape(reference), s.pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build order lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("order lookup returned status %d", resp.StatusCode)
	}

	var list models.RemoteOrderList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode order lookup response: %w", err)
	}
	if len(list.Items) == 0 {
		return nil, fmt.Errorf("order lookup returned no orders")
	}

	return &list.Items[0], nil
}
