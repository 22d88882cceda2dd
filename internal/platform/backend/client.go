// Copyright (c) 2026 Datacore. All rights reserved.

/*
Package backend is the thin JSON-over-HTTP facade to the Datacore backend API.

Every domain repository (notes, trek) talks to the backend through a [Client].
The client owns transport concerns only: request encoding, status checks,
response decoding, and classification of failures into [apperr] codes.

Classification:

  - Transport errors and 5xx responses become NetworkFailure.
  - 404 becomes NotFound.
  - 400 and 422 become ValidationError, with FastAPI-style "detail" payloads
    mapped to field errors.
*/
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/datacore/datacore/internal/platform/apperr"
	"github.com/datacore/datacore/internal/platform/constants"
	"github.com/datacore/datacore/internal/platform/ctxutil"
)

// maxErrorBody bounds how much of an error response is read for diagnostics.
const maxErrorBody = 64 << 10

// Client issues JSON requests against the backend base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// File is a single multipart upload part.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Body        io.Reader
}

// NewClient constructs a [Client]. A trailing slash on baseURL is ignored.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// URL resolves a backend path into an absolute URL.
func (c *Client) URL(path string) string {
	return c.baseURL + path
}

// # Verbs

// Get decodes the response of GET path?query into out. A nil out discards the body.
func (c *Client) Get(context context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(context, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(context context.Context, path string, body, out any) error {
	return c.do(context, http.MethodPost, path, body, out)
}

// Patch sends a partial update as JSON and decodes the response into out.
func (c *Client) Patch(context context.Context, path string, body, out any) error {
	return c.do(context, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE and decodes any response body into out.
func (c *Client) Delete(context context.Context, path string, out any) error {
	return c.do(context, http.MethodDelete, path, nil, out)
}

// Upload posts a single file as multipart/form-data.
func (c *Client) Upload(context context.Context, path string, file File, out any) error {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set(constants.HeaderContentType, contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return apperr.Internal(err)
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return apperr.Internal(err)
	}
	if err := writer.Close(); err != nil {
		return apperr.Internal(err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, c.URL(path), &buffer)
	if err != nil {
		return apperr.Internal(err)
	}
	request.Header.Set(constants.HeaderContentType, writer.FormDataContentType())

	return c.send(request, out)
}

// Ping checks that the backend answers its health endpoint.
func (c *Client) Ping(context context.Context) error {
	return c.Get(context, "/health", nil, nil)
}

// # Transport

func (c *Client) do(context context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("backend: marshal %s %s: %w", method, path, err))
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(context, method, c.URL(path), reader)
	if err != nil {
		return apperr.Internal(err)
	}
	if body != nil {
		request.Header.Set(constants.HeaderContentType, "application/json")
	}

	return c.send(request, out)
}

func (c *Client) send(request *http.Request, out any) error {
	request.Header.Set("Accept", "application/json")
	if requestID := ctxutil.GetRequestID(request.Context()); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}

	startTime := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Warn("backend_request_failed",
			slog.String("method", request.Method),
			slog.String("path", request.URL.Path),
			slog.Any("error", err),
		)
		return apperr.NetworkFailure(err)
	}
	defer response.Body.Close()

	c.logger.Debug("backend_request_finished",
		slog.String("method", request.Method),
		slog.String("path", request.URL.Path),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return classify(request, response.StatusCode, raw)
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.NetworkFailure(fmt.Errorf("backend: decode %s %s: %w", request.Method, request.URL.Path, err))
	}

	return nil
}

// # Error Classification

// errorBody is the FastAPI error shape: detail is either a string or a list
// of {loc, msg} entries.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type detailItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func classify(request *http.Request, status int, raw []byte) error {
	switch {
	case status == http.StatusNotFound:
		return apperr.NotFound("Resource")
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		message, details := parseDetail(raw)
		return apperr.ValidationError(message, details...)
	case status == http.StatusConflict:
		message, _ := parseDetail(raw)
		return apperr.Conflict(message)
	default:
		return apperr.NetworkFailure(fmt.Errorf("backend: %s %s returned %d: %s",
			request.Method, request.URL.Path, status, strings.TrimSpace(string(raw))))
	}
}

func parseDetail(raw []byte) (string, []apperr.FieldError) {
	const fallback = "The request was rejected by the backend"

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return fallback, nil
	}

	var message string
	if err := json.Unmarshal(body.Detail, &message); err == nil {
		return message, nil
	}

	var items []detailItem
	if err := json.Unmarshal(body.Detail, &items); err != nil {
		return fallback, nil
	}

	details := make([]apperr.FieldError, 0, len(items))
	for _, item := range items {
		details = append(details, apperr.FieldError{Field: fieldFromLoc(item.Loc), Message: item.Msg})
	}
	return "Validation failed", details
}

// fieldFromLoc drops the leading "body"/"query" segment FastAPI prepends.
func fieldFromLoc(loc []any) string {
	parts := make([]string, 0, len(loc))
	for i, segment := range loc {
		text := fmt.Sprint(segment)
		if i == 0 && (text == "body" || text == "query" || text == "path") {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ".")
}
