package hostaway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"flexreviews/internal/app/reviews/entity"
)

// Client отвечает только за HTTP запросы к Hostaway API.
// Одна попытка с фиксированным таймаутом, без ретраев:
// при любом сбое вызывающая сторона переключается на fallback-данные
type Client struct {
	baseURL    string
	accountID  string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, accountID, apiKey string, timeoutSec int) *Client {
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	return &Client{
		baseURL:   baseURL,
		accountID: accountID,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

type reviewsResponse struct {
	Status string                  `json:"status"`
	Result []entity.HostawayReview `json:"result"`
}

// FetchRawReviews получает сырые отзывы аккаунта из Hostaway API
func (c *Client) FetchRawReviews(ctx context.Context) ([]entity.HostawayReview, error) {
	url := fmt.Sprintf("%s/reviews?accountId=%s", c.baseURL, c.accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("hostaway API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResponse reviewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to decode hostaway response: %w", err)
	}

	if apiResponse.Status != "success" {
		return nil, fmt.Errorf("hostaway API returned status %q", apiResponse.Status)
	}

	return apiResponse.Result, nil
}
