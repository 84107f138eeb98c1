package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gestion-bot/internal/domain"
	"gestion-bot/pkg/metrics"
)

const maxErrorBody = 64 << 10

// Client talks JSON to the personnel API rooted at baseURL.
type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

func NewClient(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// apiError is the error envelope the API answers with.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type call struct {
	resource string
	op       string
	method   string
	path     string
	body     any
	out      any
}

func (c *Client) do(ctx context.Context, cl call) error {
	start := time.Now()
	err := c.roundTrip(ctx, cl)

	result := "ok"
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			result = de.Kind.String()
		} else {
			result = "error"
		}
	}
	metrics.ObserveAPI(cl.resource, cl.op, result, time.Since(start))
	return err
}

func (c *Client) roundTrip(ctx context.Context, cl call) error {
	op := cl.op + " " + cl.resource
	reqID := uuid.NewString()
	log := c.log.WithFields(logrus.Fields{
		"method":     cl.method,
		"path":       cl.path,
		"request_id": reqID,
	})

	var body io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return &domain.Error{Kind: domain.KindValidation, Op: op, Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return &domain.Error{Kind: domain.KindTransport, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("[api] request failed")
		return &domain.Error{Kind: domain.KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := errorMessage(raw)
		log.WithFields(logrus.Fields{"status": resp.StatusCode, "message": msg}).Warn("[api] non-2xx response")
		return &domain.Error{Kind: domain.KindStatus, Op: op, Status: resp.StatusCode, Message: msg}
	}
	log.WithField("status", resp.StatusCode).Debug("[api] ok")

	if cl.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		log.WithError(err).Warn("[api] undecodable body")
		return &domain.Error{Kind: domain.KindDecode, Op: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// errorMessage prefers the human message of the envelope, then its error code.
func errorMessage(raw []byte) string {
	var env apiError
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}
