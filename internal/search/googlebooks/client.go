package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/bookfinder/internal/search"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/books/v1"
	DefaultTimeout = 10 * time.Second

	// тело ошибки читаем только ради сообщения, больше не нужно
	maxErrorBody = 64 << 10
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type volumesResponse struct {
	Kind       string        `json:"kind"`
	TotalItems int           `json:"totalItems"`
	Items      []search.Item `json:"items"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search делает ровно один GET /volumes. Ретраев нет: ошибка уходит вызывающему.
func (c *Client) Search(ctx context.Context, req search.SearchRequest) ([]search.Item, error) {
	if req.MaxResults <= 0 {
		req.MaxResults = 20
	}

	params := url.Values{
		"q":            {req.Query},
		"langRestrict": {req.LangRestrict},
		"printType":    {req.PrintType},
		"orderBy":      {req.OrderBy},
		"maxResults":   {strconv.Itoa(req.MaxResults)},
		"key":          {c.apiKey},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/volumes?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		// url.Error содержит полный URL вместе с ключом, наружу его не отдаем
		return nil, fmt.Errorf("%w: %v", search.ErrUpstream, redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	c.logger.Debug("catalog responded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrBadResponse, err)
	}

	if body.Items == nil {
		return []search.Item{}, nil
	}
	return body.Items, nil
}

func statusError(resp *http.Response) error {
	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = search.ErrUnauthorized
	case http.StatusBadRequest:
		sentinel = search.ErrInvalidRequest
	case http.StatusTooManyRequests:
		sentinel = search.ErrRateLimit
	default:
		sentinel = search.ErrUpstream
	}

	status := fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		// тело не дочитали - хватит статуса
		return fmt.Errorf("%w: %s", sentinel, status)
	}
	var apiErr errorResponse
	if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("%w: %s: %s", sentinel, status, apiErr.Error.Message)
	}
	return fmt.Errorf("%w: %s", sentinel, status)
}

func redactKey(err error, key string) string {
	msg := err.Error()
	if key == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, url.QueryEscape(key), "REDACTED")
	return strings.ReplaceAll(msg, key, "REDACTED")
}
