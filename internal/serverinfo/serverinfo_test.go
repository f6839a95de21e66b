package serverinfo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Fetch(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		body        string
		want        Index
		wantErr     bool
		wantSupport bool
	}{
		{
			name:       "index with endpoints",
			statusCode: http.StatusOK,
			body:       `{"message":"math solver","endpoints":{"/solve_math_problem":"POST - upload an image","/frontend":"GET - web page"}}`,
			want: Index{
				Message: "math solver",
				Endpoints: map[string]string{
					"/solve_math_problem": "POST - upload an image",
					"/frontend":           "GET - web page",
				},
			},
			wantSupport: true,
		},
		{
			name:       "index without endpoints",
			statusCode: http.StatusOK,
			body:       `{"message":"hello"}`,
			want:       Index{Message: "hello"},
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       `oops`,
			wantErr:    true,
		},
		{
			name:       "not json",
			statusCode: http.StatusOK,
			body:       `<html></html>`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/", r.URL.Path)
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			got, err := NewReader(server.URL, 0).Fetch(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSupport, got.Supports("/solve_math_problem"))
		})
	}
}

func TestIndex_Paths(t *testing.T) {
	index := Index{Endpoints: map[string]string{"/solve_math_problem": "a", "/frontend": "b", "/": "c"}}
	assert.Equal(t, []string{"/", "/frontend", "/solve_math_problem"}, index.Paths())
	assert.Empty(t, Index{}.Paths())
}
