package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
	"github.com/peitrae/tandain-auth/app/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPeopleClient(t *testing.T, baseURL string) *PeopleClient {
	t.Helper()

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	client := NewPeopleClient(testLogger)
	client.baseURL = baseURL
	return client
}

func TestPeopleClient_FetchProfile(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantErrMsg  string
		wantProfile func(*testing.T, string, string, string)
	}{
		{
			name: "success takes the first value of each field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/people/me", r.URL.Path)
				assert.Equal(t, "names,photos,emailAddresses", r.URL.Query().Get("personFields"))
				assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{
					"names": [{"displayName": "Ada"}, {"displayName": "Secondary"}],
					"emailAddresses": [{"value": "ada@example.com"}, {"value": "old@example.com"}],
					"photos": [{"url": "https://x/a.png"}, {"url": "https://x/b.png"}]
				}`))
			},
			wantProfile: func(t *testing.T, name, email, photo string) {
				assert.Equal(t, "Ada", name)
				assert.Equal(t, "ada@example.com", email)
				assert.Equal(t, "https://x/a.png", photo)
			},
		},
		{
			name: "provider error message is surfaced verbatim",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{
					"error": {
						"code": 401,
						"message": "Request had invalid authentication credentials.",
						"status": "UNAUTHENTICATED"
					}
				}`))
			},
			wantErrMsg: "Request had invalid authentication credentials.",
		},
		{
			name: "unparseable provider failure reports the status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("gateway timeout"))
			},
			wantErrMsg: "Google People API returned status 502",
		},
		{
			name: "missing required fields are rejected",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"names": [{"displayName": "Ada"}], "emailAddresses": [], "photos": []}`))
			},
			wantErrMsg: "profile is missing name, email, or photo",
		},
		{
			name: "malformed body is rejected",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"names": [`))
			},
			wantErrMsg: "failed to decode profile response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := newTestPeopleClient(t, srv.URL)
			profile, err := client.FetchProfile(context.Background(), "t1")

			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Nil(t, profile)

				appErr, ok := apperrors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperrors.ErrCodeProfileFetchFailed, appErr.Code)
				assert.Equal(t, "fetch_profile", appErr.Location)
				assert.Equal(t, tt.wantErrMsg, appErr.Message)
			} else {
				require.NoError(t, err)
				require.NotNil(t, profile)
				tt.wantProfile(t, profile.Name, profile.Email, profile.PhotoURL)
			}
		})
	}
}

func TestPeopleClient_FetchProfile_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force a connection error

	client := newTestPeopleClient(t, srv.URL)
	_, err := client.FetchProfile(context.Background(), "t1")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeProfileFetchFailed))
}
