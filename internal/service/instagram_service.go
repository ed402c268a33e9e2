package service

import (
	"context"
	"errors"
	"time"

	"postpilot/internal/cache"
	"postpilot/internal/instagram"
	"postpilot/internal/logger"
	"postpilot/internal/models"
	"postpilot/internal/repository"
)

var (
	ErrInvalidOAuthState = errors.New("invalid or expired oauth state")
	ErrNoBusinessAccount = errors.New("no Instagram Business Account found")
	ErrNotConnected      = errors.New("instagram account is not connected")
)

const oauthStateTTL = 10 * time.Minute

type InstagramService interface {
	ConnectURL(ctx context.Context) string
	HandleCallback(ctx context.Context, userID, code, state string) (*models.InstagramConnection, error)
	GetConnection(ctx context.Context, userID string) (*models.InstagramConnection, error)
	Disconnect(ctx context.Context, userID string) error
	PublishPost(ctx context.Context, postID, userID string) (string, error)
}

type instagramService struct {
	connRepo repository.ConnectionRepository
	postRepo repository.PostRepository
	client   *instagram.Client
	cache    *cache.Cache
}

func NewInstagramService(connRepo repository.ConnectionRepository, postRepo repository.PostRepository, client *instagram.Client, c *cache.Cache) InstagramService {
	return &instagramService{
		connRepo: connRepo,
		postRepo: postRepo,
		client:   client,
		cache:    c,
	}
}

// ConnectURL returns the authorization dialog URL with a fresh single-use
// state token.
func (s *instagramService) ConnectURL(ctx context.Context) string {
	state := instagram.GenerateState()
	s.cache.SaveState(ctx, state, oauthStateTTL)
	return s.client.LoginURL(state)
}

// HandleCallback finishes the OAuth dance: validates state, upgrades the
// code to a long-lived token, resolves the connected business account and
// persists the connection.
func (s *instagramService) HandleCallback(ctx context.Context, userID, code, state string) (*models.InstagramConnection, error) {
	if !s.cache.ConsumeState(ctx, state) {
		return nil, ErrInvalidOAuthState
	}

	shortToken, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	longToken, err := s.client.LongLivedToken(ctx, shortToken)
	if err != nil {
		return nil, err
	}

	account, err := s.client.ResolveAccount(ctx, longToken)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNoBusinessAccount
	}

	conn := &models.InstagramConnection{
		UserID:         userID,
		InstagramID:    account.InstagramID,
		PageID:         account.PageID,
		Username:       account.Username,
		AccessToken:    longToken,
		TokenExpiresAt: time.Now().Add(instagram.LongLivedTokenTTL),
	}

	// Best effort: the page name already serves as a fallback username.
	if details, err := s.client.GetUserDetails(ctx, account.InstagramID, longToken); err == nil {
		if details.Username != "" {
			conn.Username = details.Username
		}
		conn.ProfilePicture = details.ProfilePictureURL
	} else {
		logger.Sugar.Warnw("failed to fetch instagram profile details", "error", err)
	}

	if err := s.connRepo.Upsert(ctx, conn); err != nil {
		return nil, err
	}

	return conn, nil
}

func (s *instagramService) GetConnection(ctx context.Context, userID string) (*models.InstagramConnection, error) {
	return s.connRepo.GetByUserID(ctx, userID)
}

func (s *instagramService) Disconnect(ctx context.Context, userID string) error {
	return s.connRepo.DeleteByUserID(ctx, userID)
}

// PublishPost pushes the first image of an owned post through the two-phase
// container protocol and marks the post PUBLISHED. A crash between the
// phases leaves an orphaned container upstream with no local record.
func (s *instagramService) PublishPost(ctx context.Context, postID, userID string) (string, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return "", err
	}
	if len(post.ImageURLs) == 0 {
		return "", ErrNoMedia
	}

	conn, err := s.connRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrConnectionNotFound) {
			return "", ErrNotConnected
		}
		return "", err
	}

	mediaID, err := s.client.PublishImage(ctx, conn.InstagramID, post.ImageURLs[0], post.Caption, conn.AccessToken)
	if err != nil {
		return "", err
	}

	if err := s.postRepo.MarkPublished(ctx, postID, userID); err != nil {
		// The media is live upstream at this point; surface the local
		// inconsistency instead of hiding it.
		logger.Sugar.Errorw("post published upstream but local status update failed",
			"postId", postID, "mediaId", mediaID, "error", err)
		return mediaID, err
	}

	if s.cache != nil {
		s.cache.Delete(ctx, dashboardCacheKey(userID))
	}

	return mediaID, nil
}
