package client

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		readErr     error
		wantJSON    bool
		wantMessage string
		wantDetails string
		wantText    string
	}{
		{
			name:        "json message",
			status:      http.StatusBadRequest,
			body:        `{"message":"Email already registered"}`,
			wantJSON:    true,
			wantMessage: "Email already registered",
		},
		{
			name:        "json error field",
			status:      http.StatusUnauthorized,
			body:        `{"error":"bad token"}`,
			wantJSON:    true,
			wantMessage: "bad token",
		},
		{
			name:        "json details",
			status:      http.StatusConflict,
			body:        `{"details":"in use"}`,
			wantJSON:    true,
			wantDetails: "in use",
		},
		{
			name:        "json detail",
			status:      http.StatusNotFound,
			body:        `{"detail":"gone"}`,
			wantJSON:    true,
			wantDetails: "gone",
		},
		{
			name:     "plain text",
			status:   http.StatusBadRequest,
			body:     "Email already registered\n",
			wantText: "Email already registered",
		},
		{
			name:    "read error",
			status:  http.StatusBadGateway,
			readErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newAPIError(&http.Response{StatusCode: tt.status}, []byte(tt.body), tt.readErr)

			assert.Equal(t, tt.status, e.StatusCode)
			assert.Equal(t, http.StatusText(tt.status), e.StatusText)
			assert.Equal(t, tt.wantJSON, e.JSON)
			assert.Equal(t, tt.wantMessage, e.Message)
			assert.Equal(t, tt.wantDetails, e.Details)
			assert.Equal(t, tt.wantText, e.Text)
		})
	}
}

func TestAPIError_Describe(t *testing.T) {
	const fallback = "Регистрация не удалась"

	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "json message wins",
			err:  &APIError{StatusCode: 400, JSON: true, Message: "Email already registered"},
			want: "Email already registered",
		},
		{
			name: "json without message falls back to generic",
			err:  &APIError{StatusCode: 400, JSON: true, Details: "x"},
			want: fallback,
		},
		{
			name: "plain text",
			err:  &APIError{StatusCode: 400, Text: "Missing required fields"},
			want: "Missing required fields",
		},
		{
			name: "empty text falls back to generic",
			err:  &APIError{StatusCode: 500},
			want: fallback,
		},
		{
			name: "unreadable body uses status",
			err:  &APIError{StatusCode: 502, StatusText: "Bad Gateway", ReadErr: errors.New("eof")},
			want: fallback + " (502: Bad Gateway)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Describe(fallback))
		})
	}
}

func TestAPIError_DetailOrStatus(t *testing.T) {
	assert.Equal(t, "in use", (&APIError{Details: "in use", StatusText: "Conflict"}).DetailOrStatus())
	assert.Equal(t, "Forbidden", (&APIError{StatusText: "Forbidden"}).DetailOrStatus())
}

func TestAsAPIError(t *testing.T) {
	wrapped := fmt.Errorf("удаление: %w", &APIError{StatusCode: 404})

	apiErr, ok := AsAPIError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, 404, apiErr.StatusCode)

	_, ok = AsAPIError(errors.New("plain"))
	assert.False(t, ok)

	assert.True(t, IsTransport(fmt.Errorf("%w: dial tcp", ErrTransport)))
	assert.False(t, IsTransport(wrapped))
}
