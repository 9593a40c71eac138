package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/peitrae/tandain-auth/app/domain"
	mock_port "github.com/peitrae/tandain-auth/app/mocks"
	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
	"github.com/peitrae/tandain-auth/app/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func createTestAuthHandler(t *testing.T) (*AuthHandler, *mock_port.MockAuthUsecase) {
	t.Helper()

	ctrl := gomock.NewController(t)
	usecase := mock_port.NewMockAuthUsecase(ctrl)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	return NewAuthHandler(usecase, testLogger), usecase
}

func performLogin(t *testing.T, handler *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login/google", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.LoginWithGoogle(c))
	return rec
}

func TestAuthHandler_LoginWithGoogle(t *testing.T) {
	validBody := `{"code": "valid-code", "redirect_uri": "https://app.example/cb"}`

	t.Run("success returns the credential and message", func(t *testing.T) {
		handler, usecase := createTestAuthHandler(t)
		usecase.EXPECT().
			LoginWithGoogle(gomock.Any(), "valid-code", "https://app.example/cb").
			Return(&domain.LoginResult{IDToken: "signed-credential", Message: "Logged in successfully"}, nil)

		rec := performLogin(t, handler, validBody)

		assert.Equal(t, http.StatusOK, rec.Code)

		var result domain.LoginResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "signed-credential", result.IDToken)
		assert.Equal(t, "Logged in successfully", result.Message)
	})

	t.Run("malformed JSON is rejected before the usecase", func(t *testing.T) {
		handler, _ := createTestAuthHandler(t)

		rec := performLogin(t, handler, `{"code": `)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "VALIDATION_FAILED", errResp.Code)
	})

	t.Run("missing fields are rejected before the usecase", func(t *testing.T) {
		handler, _ := createTestAuthHandler(t)

		rec := performLogin(t, handler, `{"redirect_uri": "https://app.example/cb"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "VALIDATION_FAILED", errResp.Code)
	})

	t.Run("non-URL redirect_uri is rejected before the usecase", func(t *testing.T) {
		handler, _ := createTestAuthHandler(t)

		rec := performLogin(t, handler, `{"code": "valid-code", "redirect_uri": "not a url"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejected code keeps its stable message", func(t *testing.T) {
		handler, usecase := createTestAuthHandler(t)
		usecase.EXPECT().
			LoginWithGoogle(gomock.Any(), "bad-code", "https://app.example/cb").
			Return(nil, apperrors.New(apperrors.ErrCodeInvalidCode, apperrors.MsgInvalidCode).
				WithLocation("exchange_code"))

		rec := performLogin(t, handler, `{"code": "bad-code", "redirect_uri": "https://app.example/cb"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "INVALID_CODE", errResp.Code)
		assert.Equal(t, apperrors.MsgInvalidCode, errResp.Message)
		assert.Equal(t, "exchange_code", errResp.Location)
	})

	t.Run("upstream fault keeps its code but gets a generic message", func(t *testing.T) {
		handler, usecase := createTestAuthHandler(t)
		usecase.EXPECT().
			LoginWithGoogle(gomock.Any(), "valid-code", "https://app.example/cb").
			Return(nil, apperrors.New(apperrors.ErrCodeProfileFetchFailed, "Request had invalid authentication credentials.").
				WithLocation("fetch_profile"))

		rec := performLogin(t, handler, validBody)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var errResp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "PROFILE_FETCH_FAILED", errResp.Code)
		assert.Equal(t, genericServerMessage, errResp.Message)
		assert.Equal(t, "fetch_profile", errResp.Location)
	})

	t.Run("identity store outage maps to 503", func(t *testing.T) {
		handler, usecase := createTestAuthHandler(t)
		usecase.EXPECT().
			LoginWithGoogle(gomock.Any(), "valid-code", "https://app.example/cb").
			Return(nil, apperrors.New(apperrors.ErrCodeIdentityStoreUnavailable, "failed to create user").
				WithLocation("resolve_identity"))

		rec := performLogin(t, handler, validBody)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var errResp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "IDENTITY_STORE_UNAVAILABLE", errResp.Code)
		assert.Equal(t, genericServerMessage, errResp.Message)
	})

	t.Run("unclassified errors become internal", func(t *testing.T) {
		handler, usecase := createTestAuthHandler(t)
		usecase.EXPECT().
			LoginWithGoogle(gomock.Any(), "valid-code", "https://app.example/cb").
			Return(nil, assert.AnError)

		rec := performLogin(t, handler, validBody)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var errResp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "INTERNAL_ERROR", errResp.Code)
		assert.Equal(t, genericServerMessage, errResp.Message)
	})
}

func TestAuthHandler_InitiateGoogleLogin(t *testing.T) {
	t.Run("returns consent URL and a fresh state token", func(t *testing.T) {
		handler, usecase := createTestAuthHandler(t)

		var capturedState string
		usecase.EXPECT().
			AuthCodeURL(gomock.Any(), "https://app.example/cb").
			DoAndReturn(func(state, redirectURI string) string {
				capturedState = state
				return "https://accounts.google.com/o/oauth2/auth?state=" + state
			})

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/login/google/url?redirect_uri=https://app.example/cb", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, handler.InitiateGoogleLogin(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp AuthURLResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.State)
		assert.Equal(t, capturedState, resp.State)
		assert.Contains(t, resp.URL, resp.State)
	})

	t.Run("missing redirect_uri is rejected", func(t *testing.T) {
		handler, _ := createTestAuthHandler(t)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/login/google/url", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, handler.InitiateGoogleLogin(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
