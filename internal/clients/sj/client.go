package sj

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.superjob.ru/2.20"

type authResponse struct {
	AccessToken string `json:"access_token"`
}

type getListingsResponse struct {
	Listings []Listing `json:"objects"`
}

type Credentials struct {
	Login        string
	Password     string
	ClientID     string
	ClientSecret string
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient   HTTPClient
	baseURL      string
	clientSecret string
	rateLimiter  *rate.Limiter
}

func NewClient(clientSecret string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      defaultBaseURL,
		clientSecret: clientSecret,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

func (c *Client) SetRequestTimeout(timeout time.Duration) {
	if httpClient, ok := c.httpClient.(*http.Client); ok {
		httpClient.Timeout = timeout
	}
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// Authenticate exchanges the application credentials for an access token
// via the oauth2 password flow.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (string, error) {

	params := url.Values{}
	params.Add("login", creds.Login)
	params.Add("password", creds.Password)
	params.Add("client_id", creds.ClientID)
	params.Add("client_secret", creds.ClientSecret)

	body, err := c.sendRequest(ctx, "GET", c.baseURL+"/oauth2/password/?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	var auth authResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&auth); err != nil {
		return "", fmt.Errorf("error decoding JSON response: %v", err)
	}

	if auth.AccessToken == "" {
		return "", fmt.Errorf("auth response contains no access token")
	}

	return auth.AccessToken, nil
}

// GetListings returns one page of raw vacancy listings for a single catalogue.
func (c *Client) GetListings(ctx context.Context, token string, parameters SearchParameters) ([]Listing, error) {

	if err := parameters.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	params := parameters.ToUrlParams()
	headers := map[string]string{
		"X-Api-App-Id":  c.clientSecret,
		"Authorization": "Bearer " + token,
	}

	body, err := c.sendRequest(ctx, "GET", c.baseURL+"/vacancies/?"+params.Encode(), headers)
	if err != nil {
		return nil, err
	}

	var listingsResponse getListingsResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&listingsResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return listingsResponse.Listings, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, url string, headers map[string]string) ([]byte, error) {

	if c.rateLimiter != nil {
		err := c.rateLimiter.Wait(ctx)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
