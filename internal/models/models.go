package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
}

// Media types accepted by the composer.
const (
	MediaTypeImage    = "IMAGE"
	MediaTypeReel     = "REEL"
	MediaTypeStory    = "STORY"
	MediaTypeCarousel = "CAROUSEL"
)

// Post lifecycle. A post never moves back from PUBLISHED to SCHEDULED.
const (
	PostStatusDraft     = "DRAFT"
	PostStatusScheduled = "SCHEDULED"
	PostStatusPublished = "PUBLISHED"
)

type Post struct {
	PostID      string         `json:"postId" db:"post_id"`
	UserID      string         `json:"userId" db:"user_id"`
	Caption     string         `json:"caption" db:"caption"`
	ImageURLs   pq.StringArray `json:"imageUrls" db:"image_urls"`
	MediaType   string         `json:"mediaType" db:"media_type"`
	Status      string         `json:"status" db:"status"`
	ScheduledAt *time.Time     `json:"scheduledAt" db:"scheduled_at"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

func IsValidMediaType(mediaType string) bool {
	switch mediaType {
	case MediaTypeImage, MediaTypeReel, MediaTypeStory, MediaTypeCarousel:
		return true
	}
	return false
}

// InstagramConnection holds the long-lived access token for the one
// Instagram Business Account linked to a user. Meta expires these tokens
// after roughly 60 days; token_expires_at records the deadline.
type InstagramConnection struct {
	ConnectionID   string    `json:"connectionId" db:"connection_id"`
	UserID         string    `json:"userId" db:"user_id"`
	InstagramID    string    `json:"instagramId" db:"instagram_id"`
	PageID         string    `json:"pageId" db:"page_id"`
	Username       string    `json:"username" db:"username"`
	ProfilePicture string    `json:"profilePicture" db:"profile_picture_url"`
	AccessToken    string    `json:"-" db:"access_token"`
	TokenExpiresAt time.Time `json:"tokenExpiresAt" db:"token_expires_at"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}
