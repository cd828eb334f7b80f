package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"INSUFFICIENT_STOCK", http.StatusConflict},
		{"EMPTY_CART", http.StatusBadRequest},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"EMAIL_TAKEN", http.StatusConflict},
		{"PERSISTENCE_FAILED", http.StatusServiceUnavailable},
		{"INVALID_SORT", http.StatusBadRequest},
		{"INVALID_QUANTITY", http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta_TotalPages(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{}, 41, 1, 20)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	resp = NewSuccessResponseWithMeta([]string{}, 40, 2, 20)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}
