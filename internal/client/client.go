package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"homebooking/internal/form"
)

const (
	bookingsPath = "/api/bookings"
	maxBodyBytes = 1 << 20
)

var ErrUnexpectedResponse = errors.New("unexpected response from booking API")

// Client submits bookings to the booking API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New returns a client for baseURL (scheme and host, no trailing path).
// A nil httpClient gets one with the given timeout.
func New(baseURL string, timeout time.Duration, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log,
	}
}

type apiReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submit posts p. A JSON reply is returned as a Result whatever the status
// code; transport failures and non-JSON replies are errors.
func (c *Client) Submit(ctx context.Context, p form.Payload) (*form.Result, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode booking: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+bookingsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post booking: %w", err)
	}
	defer resp.Body.Close()

	var reply apiReply
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&reply); err != nil {
		c.log.Warn("booking API returned a non-JSON body", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	c.log.Debug("booking submitted",
		zap.Int("status", resp.StatusCode),
		zap.Bool("success", reply.Success),
		zap.String("message", reply.Message),
	)
	return &form.Result{Success: reply.Success, Message: reply.Message}, nil
}

// Ping calls the liveness endpoint and returns its message.
func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+bookingsPath, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ping booking API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	var reply apiReply
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&reply); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return reply.Message, nil
}
