package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/okian/restaurants/pkg/metrics"
)

// maxBodyBytes caps request bodies read by the handlers.
const maxBodyBytes = 1 << 20

// result is what a handler produces. The dispatcher turns it into exactly
// one response.
type result struct {
	status int
	body   any
}

type messageBody struct {
	Message string `json:"message"`
}

type statusBody struct {
	Status string `json:"status"`
}

func respond(status int, body any) result {
	return result{status: status, body: body}
}

func noContent() result {
	return result{status: http.StatusNoContent}
}

// fail converts a client-facing error into a result and counts it. Errors
// that carry no *Error are programming mistakes and become 500s.
func fail(err error) result {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return serverError(err)
	}
	metrics.RecordError(kindLabel(apiErr))
	return respond(apiErr.Status, messageBody{Message: apiErr.Message})
}

func serverError(err error) result {
	metrics.RecordError(kindLabel(err))
	return respond(http.StatusInternalServerError, messageBody{Message: "Server error: " + err.Error()})
}

// writeResponse writes res to w. Results without a body are written with
// their status only and no content type.
func writeResponse(w http.ResponseWriter, res result) {
	if res.body == nil {
		w.WriteHeader(res.status)
		return
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	if err := enc.Encode(res.body); err != nil {
		res = serverError(err)
		buf.Reset()
		_ = enc.Encode(res.body)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(res.status)
	_, _ = w.Write(buf.Bytes())
}

// decodeInput reads a JSON object from body into dst. An empty body leaves
// dst untouched so the caller sees every field as absent.
func decodeInput(op string, body io.Reader, dst any) error {
	if body == nil {
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return WrapKind(op, errInvalidJSON, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return WrapKind(op, errInvalidJSON, err)
	}
	return nil
}
