package service

import (
	"math/rand"
)

// Composer helpers back the create-post page. Suggestions and generated
// captions are transient UI state, nothing here is persisted.

var suggestedHashtags = []string{
	"#instagram",
	"#instagood",
	"#photooftheday",
	"#fashion",
	"#beautiful",
	"#happy",
	"#cute",
	"#like4like",
	"#followme",
	"#picoftheday",
	"#art",
	"#style",
	"#instadaily",
	"#repost",
	"#summer",
}

var cannedCaptions = []string{
	"Embracing the journey, one step at a time. What's your next adventure?",
	"Creating moments that matter. Share your story with us!",
	"Life is better when you're laughing. What made you smile today?",
	"Chasing dreams and making memories. Join us on this incredible journey!",
	"Finding beauty in the everyday. What inspires you?",
}

type ComposerService interface {
	SuggestHashtags() []string
	GenerateCaption() string
}

type composerService struct{}

func NewComposerService() ComposerService {
	return composerService{}
}

func (composerService) SuggestHashtags() []string {
	out := make([]string, len(suggestedHashtags))
	copy(out, suggestedHashtags)
	return out
}

func (composerService) GenerateCaption() string {
	return cannedCaptions[rand.Intn(len(cannedCaptions))]
}
