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
		{"ALREADY_EXISTS", http.StatusConflict},
		{"ALREADY_PAID_OUT", http.StatusConflict},
		{"PAYMENT_REQUIRED", http.StatusPaymentRequired},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"ITEM_NOT_AVAILABLE", http.StatusUnprocessableEntity},
		{"INVALID_SPLIT", http.StatusBadRequest},
		{"INVALID_PRICE", http.StatusBadRequest},
		{"ALREADY_CANCELLED", http.StatusUnprocessableEntity},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestListRequestToFilter(t *testing.T) {
	t.Run("empty request uses defaults", func(t *testing.T) {
		f := ListRequest{}.ToFilter()
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, 20, f.PageSize)
		assert.Equal(t, "created_at", f.OrderBy)
		assert.Equal(t, "desc", f.OrderDir)
	})

	t.Run("explicit values carry through", func(t *testing.T) {
		f := ListRequest{Page: 3, PageSize: 50, OrderBy: "sold_at", OrderDir: "asc", Search: "jacket"}.ToFilter()
		assert.Equal(t, 3, f.Page)
		assert.Equal(t, 50, f.PageSize)
		assert.Equal(t, "sold_at", f.OrderBy)
		assert.Equal(t, "asc", f.OrderDir)
		assert.Equal(t, "jacket", f.Search)
	})
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
