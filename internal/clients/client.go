// internal/clients/client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"storefront/internal/apierr"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Options configures the clients in this package.
type Options struct {
	// HTTPClient defaults to a client with Timeout.
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *zap.Logger
}

// base holds what every client shares: where the service is and how to
// reach it.
type base struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	tracer  trace.Tracer
}

func newBase(baseURL, component string, opts Options) base {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return base{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger.With(zap.String("component", component)),
		tracer:  otel.Tracer("storefront/clients/" + component),
	}
}

// do sends a request and decodes a 2xx JSON body into out. A request that
// never produced a response, or whose body could not be decoded, fails with
// apierr.ErrNetworkFailure. Any other status fails with *apierr.ServerError.
func (b base) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	ctx, span := b.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		),
	)
	defer span.End()

	err := b.roundTrip(ctx, span, method, path, token, body, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		b.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
	}
	return err
}

func (b base) roundTrip(ctx context.Context, span trace.Span, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", apierr.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", apierr.ErrNetworkFailure, err)
	}
	return nil
}

// serverError reads the {success, message} envelope of a failed response.
func serverError(resp *http.Response) error {
	se := &apierr.ServerError{Status: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return se
	}
	var env apierr.Envelope
	if json.Unmarshal(data, &env) == nil {
		se.Message = env.Message
	}
	return se
}

func isStatus(err error, status int) bool {
	se, ok := apierr.AsServerError(err)
	return ok && se.Status == status
}
