package causelistsvc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandyala/kacheri/core"
)

type nopLogger struct{}

func (nopLogger) Enable(bool) {}

func (nopLogger) Debug(string, ...interface{}) {}

func (nopLogger) Info(string, ...interface{}) {}

func (nopLogger) Warn(string, ...interface{}) {}

func (nopLogger) Error(string, ...interface{}) {}

func (nopLogger) Fatal(string, ...interface{}) {}

func newTestClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		logger:  nopLogger{},
	}
}

func Test_Client_FetchDaily(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantCode     string
		wantDate     string
		wantCount    int
		wantCases    int
		wantExtError bool
	}{
		{
			name:   "wrapper object",
			status: http.StatusOK,
			body: `{"cases":[{"case_no":"WP 1234/2025"},{"case_no":"CRLP 99/2025"}],` +
				`"count":2,"advocate_code":"19272","date":"10-01-2025"}`,
			wantCode:  "19272",
			wantDate:  "10-01-2025",
			wantCount: 2,
			wantCases: 2,
		},
		{
			name:      "bare array",
			status:    http.StatusOK,
			body:      `[{"case_no":"WP 1/2025"},{"case_no":"WP 2/2025"},{"case_no":"WP 3/2025"}]`,
			wantCount: 3,
			wantCases: 3,
		},
		{
			name:   "unrecognized payload",
			status: http.StatusOK,
			body:   `"maintenance"`,
		},
		{
			name:   "empty wrapper",
			status: http.StatusOK,
			body:   `{"cases":[],"count":0}`,
		},
		{
			name:         "upstream error",
			status:       http.StatusBadGateway,
			body:         `oops`,
			wantExtError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotCode, gotDate string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotCode = r.URL.Query().Get("advocateCode")
				gotDate = r.URL.Query().Get("listDate")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res, err := newTestClient(srv.URL).FetchDaily(context.Background(), "19272", "10-01-2025")
			assert.Equal(t, dailyPath, gotPath)
			assert.Equal(t, "19272", gotCode)
			assert.Equal(t, "10-01-2025", gotDate)

			if tt.wantExtError {
				require.Error(t, err)
				extErr, ok := errors.Cause(err).(*core.ExternalServiceError)
				require.True(t, ok, "expected ExternalServiceError, got %T", errors.Cause(err))
				assert.Equal(t, tt.status, extErr.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, res.AdvocateCode)
			assert.Equal(t, tt.wantDate, res.ListDate)
			assert.Equal(t, tt.wantCount, res.Count)
			assert.Len(t, res.Cases, tt.wantCases)
		})
	}
}
