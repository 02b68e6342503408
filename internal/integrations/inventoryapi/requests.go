package inventoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"lab-inventory/internal/dto"
	apperrors "lab-inventory/pkg/errors"
	"lab-inventory/pkg/metrics"
)

const maxErrorBody = 64 << 10

// do sends one JSON request and decodes a 2xx body into out (when non-nil).
// Every failure comes back as *apperrors.RemoteError.
func (p *Provider) do(ctx context.Context, op, method, path string, body, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamRequests.WithLabelValues(op, metrics.Outcome(err)).Inc()
		metrics.UpstreamDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &apperrors.RemoteError{Kind: apperrors.KindDecode, Op: op, Err: fmt.Errorf("encode body: %w", err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return &apperrors.RemoteError{Kind: apperrors.KindNetwork, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Warn("inventory API unreachable", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return &apperrors.RemoteError{Kind: apperrors.KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		remote := &apperrors.RemoteError{
			Kind:   apperrors.KindFromStatus(resp.StatusCode),
			Op:     op,
			Status: resp.StatusCode,
			Detail: parseDetail(raw),
		}
		p.logger.Warn("inventory API returned an error",
			zap.String("op", op),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", remote.Detail),
		)
		return remote
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperrors.RemoteError{Kind: apperrors.KindDecode, Op: op, Status: resp.StatusCode, Err: err}
	}
	p.logger.Debug("inventory API call", zap.String("op", op), zap.Duration("took", time.Since(start)))
	return nil
}

// parseDetail extracts "detail" from an error body. FastAPI sends either a
// string or a list of {loc, msg} objects.
func parseDetail(raw []byte) string {
	var body dto.ErrorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}

	var list []struct {
		Msg string        `json:"msg"`
		Loc []interface{} `json:"loc"`
	}
	if err := json.Unmarshal(body.Detail, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, d := range list {
			if d.Msg == "" {
				continue
			}
			if len(d.Loc) > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", d.Loc[len(d.Loc)-1], d.Msg))
			} else {
				msgs = append(msgs, d.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
