// Package seed holds the demo conversations a fresh dashboard account starts with.
package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/replydesk/internal/domain"
)

type demoMessage struct {
	role    domain.Role
	content string
	ago     time.Duration
}

type demoConversation struct {
	sender   string
	platform domain.Platform
	unread   bool
	starred  bool
	paused   bool
	archived bool
	thread   []demoMessage
}

var demo = []demoConversation{
	{
		sender:   "Sarah Johnson",
		platform: domain.PlatformMessenger,
		unread:   true,
		thread: []demoMessage{
			{domain.RoleUser, "Hi, I ordered a jacket last week and it still hasn't arrived. Order #10234.", 42 * time.Minute},
			{domain.RoleBot, "Thanks Sarah! Order #10234 shipped on Monday with DHL and is due tomorrow.", 41 * time.Minute},
			{domain.RoleUser, "Great, can I change the delivery address?", 12 * time.Minute},
		},
	},
	{
		sender:   "Mike Chen",
		platform: domain.PlatformInstagram,
		unread:   true,
		starred:  true,
		thread: []demoMessage{
			{domain.RoleUser, "Do you have the running shoes in size 44?", 3 * time.Hour},
			{domain.RoleBot, "Yes, size 44 is in stock in black and white.", 3 * time.Hour},
			{domain.RoleUser, "Awesome, is there a discount for first orders?", 2 * time.Hour},
			{domain.RoleBot, "Use WELCOME10 at checkout for 10% off your first order.", 2 * time.Hour},
		},
	},
	{
		sender:   "Emma Wilson",
		platform: domain.PlatformWebsite,
		thread: []demoMessage{
			{domain.RoleUser, "What is your return policy?", 26 * time.Hour},
			{domain.RoleBot, "You can return any item within 30 days of delivery for a full refund.", 26 * time.Hour},
		},
	},
	{
		sender:   "David Brown",
		platform: domain.PlatformMessenger,
		paused:   true,
		thread: []demoMessage{
			{domain.RoleUser, "I was charged twice for order #10198.", 5 * time.Hour},
			{domain.RoleBot, "I'm sorry about that. I've passed this to our billing team.", 5 * time.Hour},
			{domain.RoleUser, "Please refund the duplicate charge asap.", 4 * time.Hour},
		},
	},
	{
		sender:   "Lisa Garcia",
		platform: domain.PlatformInstagram,
		thread: []demoMessage{
			{domain.RoleUser, "Love the new collection! When does the summer line drop?", 50 * time.Hour},
			{domain.RoleBot, "Thank you! The summer line launches on June 1st.", 50 * time.Hour},
		},
	},
	{
		sender:   "Tom Anderson",
		platform: domain.PlatformWebsite,
		paused:   true,
		archived: true,
		thread: []demoMessage{
			{domain.RoleUser, "Is the store open on Sundays?", 96 * time.Hour},
			{domain.RoleBot, "Our online store is always open, and the shop is open 10am-4pm on Sundays.", 96 * time.Hour},
			{domain.RoleUser, "Thanks!", 95 * time.Hour},
		},
	},
}

// Dataset builds the demo conversations for owner, with message times
// relative to now and rendered in loc.
func Dataset(owner uuid.UUID, now time.Time, loc *time.Location) ([]domain.Conversation, map[string][]domain.Message) {
	if loc == nil {
		loc = time.UTC
	}

	convs := make([]domain.Conversation, 0, len(demo))
	messages := make(map[string][]domain.Message, len(demo))

	for _, d := range demo {
		id := uuid.NewString()
		convs = append(convs, domain.Conversation{
			ID:        id,
			OwnerID:   owner,
			Sender:    d.sender,
			Platform:  d.platform,
			Unread:    d.unread,
			Starred:   d.starred && !d.archived,
			Paused:    d.paused || d.archived,
			Archived:  d.archived,
			CreatedAt: now.Add(-d.thread[0].ago),
		})

		thread := make([]domain.Message, 0, len(d.thread))
		for n, m := range d.thread {
			sentAt := now.Add(-m.ago)
			thread = append(thread, domain.Message{
				ID:             fmt.Sprintf("%s-%d", id, n+1),
				ConversationID: id,
				Role:           m.role,
				Content:        m.content,
				Timestamp:      sentAt.In(loc).Format(domain.TimestampLayout),
				SentAt:         sentAt,
			})
		}
		messages[id] = thread
	}
	return convs, messages
}
