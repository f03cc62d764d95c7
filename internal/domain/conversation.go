package domain

import (
	"time"

	"github.com/google/uuid"
)

type Platform string

const (
	PlatformMessenger Platform = "messenger"
	PlatformInstagram Platform = "instagram"
	PlatformWebsite   Platform = "website"
)

var Platforms = []Platform{PlatformMessenger, PlatformInstagram, PlatformWebsite}

func (p Platform) Valid() bool {
	switch p {
	case PlatformMessenger, PlatformInstagram, PlatformWebsite:
		return true
	}
	return false
}

// Conversation is a single customer/bot thread, scoped to one platform.
type Conversation struct {
	ID        string    `json:"id"`
	OwnerID   uuid.UUID `json:"-"`
	Sender    string    `json:"sender"`
	Platform  Platform  `json:"platform"`
	Unread    bool      `json:"unread"`
	Starred   bool      `json:"starred"`
	Paused    bool      `json:"paused"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
}

// NewConversation returns a conversation with the default flags of a fresh thread.
func NewConversation(id, sender string, platform Platform) *Conversation {
	return &Conversation{
		ID:        id,
		Sender:    sender,
		Platform:  platform,
		Unread:    true,
		CreatedAt: time.Now(),
	}
}
