package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/peitrae/tandain-auth/app/domain"
	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
)

const peopleAPIURL = "https://people.googleapis.com/v1"

// personFields requested from the People API; the profile needs
// exactly these three.
const personFields = "names,photos,emailAddresses"

// PeopleClient retrieves the authenticated user's profile from the
// Google People API.
type PeopleClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewPeopleClient creates a new People API client
func NewPeopleClient(logger *slog.Logger) *PeopleClient {
	return &PeopleClient{
		baseURL: peopleAPIURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With("component", "google_people"),
	}
}

type peopleResponse struct {
	Names []struct {
		DisplayName string `json:"displayName"`
	} `json:"names"`
	EmailAddresses []struct {
		Value string `json:"value"`
	} `json:"emailAddresses"`
	Photos []struct {
		URL string `json:"url"`
	} `json:"photos"`
}

type peopleErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// FetchProfile issues one authenticated read against people/me. Google
// may return several values per field; the first element wins.
func (p *PeopleClient) FetchProfile(ctx context.Context, accessToken string) (*domain.GoogleProfile, error) {
	url := fmt.Sprintf("%s/people/me?personFields=%s", p.baseURL, personFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fetchFailed("failed to build profile request", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Error("profile request failed", "error", err)
		return nil, fetchFailed("failed to reach Google People API", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fetchFailed("failed to read profile response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, p.providerError(resp.StatusCode, body)
	}

	var profile peopleResponse
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fetchFailed("failed to decode profile response", err)
	}

	if len(profile.Names) == 0 || len(profile.EmailAddresses) == 0 || len(profile.Photos) == 0 {
		p.logger.Error("profile response missing required fields",
			"names", len(profile.Names),
			"emails", len(profile.EmailAddresses),
			"photos", len(profile.Photos))
		return nil, fetchFailed("profile is missing name, email, or photo", nil)
	}

	return &domain.GoogleProfile{
		Name:     profile.Names[0].DisplayName,
		Email:    profile.EmailAddresses[0].Value,
		PhotoURL: profile.Photos[0].URL,
	}, nil
}

// providerError surfaces the provider's own message verbatim so an
// expired or malformed access token stays diagnosable.
func (p *PeopleClient) providerError(statusCode int, body []byte) *apperrors.AppError {
	var errResp peopleErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		p.logger.Error("People API rejected profile request",
			"provider_code", errResp.Error.Code,
			"provider_status", errResp.Error.Status,
			"message", errResp.Error.Message)
		return fetchFailed(errResp.Error.Message, nil)
	}

	p.logger.Error("People API returned unexpected response",
		"http_status", statusCode)
	return fetchFailed(fmt.Sprintf("Google People API returned status %d", statusCode), nil)
}

func fetchFailed(message string, cause error) *apperrors.AppError {
	return apperrors.Wrap(apperrors.ErrCodeProfileFetchFailed, message, cause).
		WithLocation("fetch_profile")
}
