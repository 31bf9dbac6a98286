package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRender_FailureRedirectsWithFlash(t *testing.T) {
	s := NewServer(nil, zap.NewNop(), Options{SecretKey: "secret"})
	broken := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<h1>half")
		return errors.New("template exploded")
	})

	tests := []struct {
		path     string
		location string
	}{
		{"/record/1", "/"},
		{"/dashboard", "/"},
		{"/", "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			s.render(rec, req, broken)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			assert.NotContains(t, rec.Body.String(), "half")

			next := httptest.NewRequest(http.MethodGet, tt.location, nil)
			carry(rec, next)
			flashes := s.flash.pop(httptest.NewRecorder(), next)
			if assert.Len(t, flashes, 1) {
				assert.Equal(t, FlashError, flashes[0].Category)
				assert.Equal(t, "Error rendering page.", flashes[0].Message)
			}
		})
	}
}
