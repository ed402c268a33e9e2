package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"postpilot/internal/config"
	"postpilot/internal/logger"
)

// Scopes required for publishing and reading page basics.
var Scopes = []string{
	"instagram_basic",
	"instagram_content_publish",
	"pages_show_list",
	"pages_read_engagement",
	"business_management",
}

// LongLivedTokenTTL is roughly how long Meta keeps a long-lived token valid.
const LongLivedTokenTTL = 60 * 24 * time.Hour

// The provider message is preserved verbatim behind these sentinels so
// callers can branch with errors.Is while users still see Meta's wording.
var (
	ErrOAuthExchange     = errors.New("oauth exchange failed")
	ErrContainerCreation = errors.New("container creation failed")
	ErrPublish           = errors.New("publish failed")
	ErrGraphAPI          = errors.New("graph api error")
)

// Account identifies the Instagram Business Account connected to a page.
type Account struct {
	InstagramID string
	PageID      string
	Username    string
	AccessToken string
}

// UserDetails is the public profile of an Instagram Business Account.
type UserDetails struct {
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// Client talks to the Facebook Graph API (v19.0). All error bodies are
// shaped {"error": {"message": "..."}}.
type Client struct {
	appID       string
	appSecret   string
	redirectURI string
	graphURL    string
	dialogURL   string
	httpClient  *http.Client
}

func NewClient(cfg config.Instagram) *Client {
	return &Client{
		appID:       cfg.AppID,
		appSecret:   cfg.AppSecret,
		redirectURI: cfg.RedirectURI,
		graphURL:    strings.TrimSuffix(cfg.GraphURL, "/"),
		dialogURL:   cfg.DialogURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// GenerateState returns a random anti-CSRF state token.
func GenerateState() string {
	return uuid.NewString()
}

// LoginURL builds the authorization dialog URL for the given state token.
func (c *Client) LoginURL(state string) string {
	conf := &oauth2.Config{
		ClientID:    c.appID,
		RedirectURL: c.redirectURI,
		Scopes:      Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.dialogURL,
			TokenURL: c.graphURL + "/oauth/access_token",
		},
	}
	return conf.AuthCodeURL(state)
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	Error       *graphError `json:"error"`
}

type graphError struct {
	Message string `json:"message"`
}

// ExchangeCode trades an authorization code for a short-lived access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	q := url.Values{}
	q.Set("client_id", c.appID)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("client_secret", c.appSecret)
	q.Set("code", code)

	var resp tokenResponse
	if err := c.get(ctx, "/oauth/access_token", q, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrOAuthExchange, resp.Error.Message)
	}
	return resp.AccessToken, nil
}

// LongLivedToken exchanges a short-lived token via the fb_exchange_token
// grant. The result stays valid for about 60 days.
func (c *Client) LongLivedToken(ctx context.Context, shortLivedToken string) (string, error) {
	q := url.Values{}
	q.Set("grant_type", "fb_exchange_token")
	q.Set("client_id", c.appID)
	q.Set("client_secret", c.appSecret)
	q.Set("fb_exchange_token", shortLivedToken)

	var resp tokenResponse
	if err := c.get(ctx, "/oauth/access_token", q, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrOAuthExchange, resp.Error.Message)
	}
	return resp.AccessToken, nil
}

type pagesResponse struct {
	Data []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"data"`
	Error *graphError `json:"error"`
}

type pageDetailsResponse struct {
	InstagramBusinessAccount *struct {
		ID string `json:"id"`
	} `json:"instagram_business_account"`
	AccessToken string      `json:"access_token"`
	Error       *graphError `json:"error"`
}

// ResolveAccount lists the user's pages and returns the first one with a
// connected Instagram Business Account, or nil if none has one. Provider
// order decides ties.
func (c *Client) ResolveAccount(ctx context.Context, accessToken string) (*Account, error) {
	q := url.Values{}
	q.Set("access_token", accessToken)

	var pages pagesResponse
	if err := c.get(ctx, "/me/accounts", q, &pages); err != nil {
		return nil, err
	}
	if pages.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrGraphAPI, pages.Error.Message)
	}

	for _, page := range pages.Data {
		dq := url.Values{}
		dq.Set("fields", "instagram_business_account,access_token")
		dq.Set("access_token", accessToken)

		var details pageDetailsResponse
		if err := c.get(ctx, "/"+page.ID, dq, &details); err != nil {
			return nil, err
		}
		if details.Error != nil {
			return nil, fmt.Errorf("%w: %s", ErrGraphAPI, details.Error.Message)
		}

		if details.InstagramBusinessAccount != nil {
			return &Account{
				InstagramID: details.InstagramBusinessAccount.ID,
				PageID:      page.ID,
				Username:    page.Name,
				AccessToken: accessToken,
			}, nil
		}
	}

	logger.Sugar.Info("no Instagram Business Account found in any page")
	return nil, nil
}

// GetUserDetails fetches the username and profile picture of an account.
func (c *Client) GetUserDetails(ctx context.Context, instagramID, accessToken string) (*UserDetails, error) {
	q := url.Values{}
	q.Set("fields", "username,profile_picture_url")
	q.Set("access_token", accessToken)

	var resp struct {
		UserDetails
		Error *graphError `json:"error"`
	}
	if err := c.get(ctx, "/"+instagramID, q, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrGraphAPI, resp.Error.Message)
	}
	return &resp.UserDetails, nil
}

type createResponse struct {
	ID    string      `json:"id"`
	Error *graphError `json:"error"`
}

// CreateContainer registers a pending media object and returns its creation
// ID, the first phase of the two-step publish protocol.
func (c *Client) CreateContainer(ctx context.Context, instagramID, imageURL, caption, accessToken string) (string, error) {
	q := url.Values{}
	q.Set("image_url", imageURL)
	q.Set("caption", caption)
	q.Set("access_token", accessToken)

	var resp createResponse
	if err := c.post(ctx, "/"+instagramID+"/media", q, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrContainerCreation, resp.Error.Message)
	}
	return resp.ID, nil
}

// PublishContainer finalizes publication of a previously created container
// and returns the published media ID.
func (c *Client) PublishContainer(ctx context.Context, instagramID, creationID, accessToken string) (string, error) {
	q := url.Values{}
	q.Set("creation_id", creationID)
	q.Set("access_token", accessToken)

	var resp createResponse
	if err := c.post(ctx, "/"+instagramID+"/media_publish", q, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrPublish, resp.Error.Message)
	}
	return resp.ID, nil
}

// PublishImage runs both phases back to back. A failure between the phases
// leaves an orphaned container upstream; there is no retry or idempotency
// key across the two calls.
func (c *Client) PublishImage(ctx context.Context, instagramID, imageURL, caption, accessToken string) (string, error) {
	creationID, err := c.CreateContainer(ctx, instagramID, imageURL, caption, accessToken)
	if err != nil {
		return "", err
	}
	return c.PublishContainer(ctx, instagramID, creationID, accessToken)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, dest)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, dest interface{}) error {
	return c.do(ctx, http.MethodPost, path, query, dest)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, dest interface{}) error {
	reqURL := c.graphURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build graph request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read graph response: %w", err)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode graph response: %w", err)
	}
	return nil
}
