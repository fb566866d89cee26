package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Request wraps *http.Request with body-binding and auth helpers.
type Request struct {
	r *http.Request
}

// NewRequest wraps an http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{r: r}
}

// Bind decodes the JSON body into v, rejecting unknown fields.
func (req *Request) Bind(v any) error {
	dec := json.NewDecoder(req.r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// BearerToken returns the token from the Authorization header, or "".
func (req *Request) BearerToken() string {
	h := req.r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Query returns a query-string parameter.
func (req *Request) Query(key string) string {
	return req.r.URL.Query().Get(key)
}
