package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/valyala/fasthttp"

	"replay-coach/internal/config"
	"replay-coach/internal/constants"
	"replay-coach/internal/domain"
)

// ParserClient talks to the external replay-parsing service, which turns
// a raw replay file into a per-player fingerprint. Parsing itself is the
// service's problem; this client only ships bytes and decodes the result.
type ParserClient struct {
	baseURL string
	apiKey  string
	client  *fasthttp.Client
}

func NewParserClient(cfg *config.Config) *ParserClient {
	return &ParserClient{
		baseURL: cfg.ParserAPIURL,
		apiKey:  cfg.ParserAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     20,
			ReadTimeout:         constants.ParserAPITimeout,
			WriteTimeout:        constants.ParserAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

type parseResponse struct {
	Success     bool                      `json:"success"`
	Error       string                    `json:"error,omitempty"`
	Fingerprint *domain.ReplayFingerprint `json:"fingerprint,omitempty"`
}

// ParseReplay uploads one replay file and returns its fingerprint.
func (c *ParserClient) ParseReplay(ctx context.Context, filename string, data []byte) (*domain.ReplayFingerprint, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write replay data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/parse")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType(writer.FormDataContentType())
	req.Header.Set("X-API-Key", c.apiKey)
	req.SetBody(body.Bytes())

	deadline := time.Now().Add(constants.ParserAPITimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("parser request failed: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("parser returned status %d", resp.StatusCode())
	}

	var parsed parseResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode parser response: %w", err)
	}
	if !parsed.Success || parsed.Fingerprint == nil {
		return nil, fmt.Errorf("parser rejected replay %s: %s", filename, parsed.Error)
	}
	return parsed.Fingerprint, nil
}
