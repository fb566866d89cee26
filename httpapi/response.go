package httpapi

import (
	"encoding/json"
	"net/http"
)

// Response wraps http.ResponseWriter with the JSON helpers the API uses.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// JSON sends a JSON response.
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Created sends 201 JSON: {"data": v}
func (res *Response) Created(v any) {
	res.JSON(http.StatusCreated, envelope{"data": v})
}

// Error sends a JSON error response.
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// Unauthorized sends 401.
func (res *Response) Unauthorized(message string) {
	if message == "" {
		message = "Unauthenticated."
	}
	res.JSON(http.StatusUnauthorized, envelope{"message": message})
}

// NotFound sends 404.
func (res *Response) NotFound(message string) {
	if message == "" {
		message = "Not found."
	}
	res.JSON(http.StatusNotFound, envelope{"message": message})
}

// ServerError sends 500.
func (res *Response) ServerError(message string) {
	if message == "" {
		message = "Server error."
	}
	res.JSON(http.StatusInternalServerError, envelope{"message": message})
}

type envelope map[string]any
