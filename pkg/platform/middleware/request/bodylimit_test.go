package request

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	cases := []struct {
		name     string
		limit    int64
		bodySize int
		overflow bool
	}{
		{"under the limit", 1024, 100, false},
		{"exactly the limit", 100, 100, false},
		{"one byte over", 100, 101, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var readErr error
			handler := BodyLimit(tc.limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, readErr = io.ReadAll(r.Body)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/contracts", strings.NewReader(strings.Repeat("x", tc.bodySize)))
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if !tc.overflow {
				assert.NoError(t, readErr)
				return
			}
			var maxErr *http.MaxBytesError
			assert.True(t, errors.As(readErr, &maxErr))
		})
	}
}
