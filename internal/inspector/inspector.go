// Package inspector holds the view state behind the dashboard's chat inspector:
// the conversation list, the active selection and filter, every conversation's
// message thread, and the edit-in-place workflow for bot replies.
//
// An Inspector is single-threaded. Every operation runs to completion and
// reports whether it changed anything; disallowed transitions are ignored.
package inspector

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/replydesk/internal/domain"
)

// State is the selection, filter and compose-box state of one inspector.
type State struct {
	Filter           domain.Filter `json:"filter"`
	SelectedID       *string       `json:"selected_conversation_id"`
	EditingMessageID *string       `json:"editing_message_id"`
	InputDraft       string        `json:"input_draft"`
}

type Inspector struct {
	conversations []*domain.Conversation
	messages      map[string][]*domain.Message
	state         State

	now      func() time.Time
	location *time.Location
	newID    func(conversationID string) string
}

type Option func(*Inspector)

// WithClock replaces the wall clock used to stamp appended messages.
func WithClock(now func() time.Time) Option {
	return func(i *Inspector) { i.now = now }
}

// WithLocation sets the time zone message timestamps are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(i *Inspector) {
		if loc != nil {
			i.location = loc
		}
	}
}

// WithIDGenerator replaces the message id generator.
func WithIDGenerator(gen func(conversationID string) string) Option {
	return func(i *Inspector) { i.newID = gen }
}

// New builds an inspector over conversations (in display order) and their
// threads, keyed by conversation id. The inspector takes ownership of both.
func New(conversations []*domain.Conversation, messages map[string][]*domain.Message, opts ...Option) *Inspector {
	if messages == nil {
		messages = make(map[string][]*domain.Message)
	}
	i := &Inspector{
		conversations: conversations,
		messages:      messages,
		state:         State{Filter: domain.FilterAll},
		now:           time.Now,
		location:      time.Local,
		newID: func(conversationID string) string {
			return conversationID + "-" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// State returns a copy of the current selection/filter state.
func (i *Inspector) State() State {
	s := i.state
	if s.SelectedID != nil {
		id := *s.SelectedID
		s.SelectedID = &id
	}
	if s.EditingMessageID != nil {
		id := *s.EditingMessageID
		s.EditingMessageID = &id
	}
	return s
}

// FilterConversations returns the conversations matching filter, in input order.
func FilterConversations(list []*domain.Conversation, filter domain.Filter) []*domain.Conversation {
	out := make([]*domain.Conversation, 0, len(list))
	for _, c := range list {
		if filter.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// Conversations returns every conversation, archived included.
func (i *Inspector) Conversations() []*domain.Conversation {
	return i.conversations
}

// Visible returns the conversations listed under the current filter.
func (i *Inspector) Visible() []*domain.Conversation {
	return FilterConversations(i.conversations, i.state.Filter)
}

// Counts returns how many conversations each filter would list.
func (i *Inspector) Counts() map[domain.Filter]int {
	counts := make(map[domain.Filter]int, len(domain.Filters))
	for _, f := range domain.Filters {
		counts[f] = 0
	}
	for _, c := range i.conversations {
		for _, f := range domain.Filters {
			if f.Matches(c) {
				counts[f]++
			}
		}
	}
	return counts
}

func (i *Inspector) Conversation(id string) *domain.Conversation {
	for _, c := range i.conversations {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Selected looks up the active conversation. It is nil when nothing is
// selected or the selection no longer exists.
func (i *Inspector) Selected() *domain.Conversation {
	if i.state.SelectedID == nil {
		return nil
	}
	return i.Conversation(*i.state.SelectedID)
}

// Messages returns the thread of conversation id.
func (i *Inspector) Messages(id string) []*domain.Message {
	return i.messages[id]
}

func (i *Inspector) SetFilter(f domain.Filter) bool {
	if !f.Valid() || f == i.state.Filter {
		return false
	}
	i.state.Filter = f
	return true
}

// Select makes id the active conversation. The filter is not consulted and
// unread is left alone.
func (i *Inspector) Select(id string) bool {
	if i.Conversation(id) == nil {
		return false
	}
	if i.state.SelectedID != nil && *i.state.SelectedID == id {
		return false
	}
	if i.state.EditingMessageID != nil {
		i.CancelEdit()
	}
	i.state.SelectedID = &id
	return true
}

func (i *Inspector) ToggleStar() bool {
	c := i.Selected()
	if c == nil || c.Archived {
		return false
	}
	c.Starred = !c.Starred
	return true
}

func (i *Inspector) TogglePause() bool {
	c := i.Selected()
	if c == nil || c.Archived {
		return false
	}
	c.Paused = !c.Paused
	return true
}

// ToggleArchive archives the active conversation, unstarring and pausing it,
// or unarchives it. Unarchiving leaves starred and paused as they are.
func (i *Inspector) ToggleArchive() bool {
	c := i.Selected()
	if c == nil {
		return false
	}
	if c.Archived {
		c.Archived = false
		return true
	}
	c.Archived = true
	c.Starred = false
	c.Paused = true
	return true
}

// DeleteConversation removes conversation id and its thread. The selection is
// cleared only when it pointed at id.
func (i *Inspector) DeleteConversation(id string) bool {
	idx := -1
	for n, c := range i.conversations {
		if c.ID == id {
			idx = n
			break
		}
	}
	if idx < 0 {
		return false
	}
	i.conversations = append(i.conversations[:idx], i.conversations[idx+1:]...)
	delete(i.messages, id)

	if i.state.SelectedID != nil && *i.state.SelectedID == id {
		i.state.SelectedID = nil
		i.state.EditingMessageID = nil
		i.state.InputDraft = ""
	}
	return true
}

func (i *Inspector) SetDraft(text string) {
	i.state.InputDraft = text
}

// SendOrEdit saves draft into the message being edited, or appends it as a new
// bot message to the active conversation. It returns the affected message.
func (i *Inspector) SendOrEdit(draft string) (*domain.Message, bool) {
	if strings.TrimSpace(draft) == "" {
		return nil, false
	}
	c := i.Selected()
	if c == nil {
		return nil, false
	}

	if i.state.EditingMessageID != nil {
		m := i.findMessage(c.ID, *i.state.EditingMessageID)
		if m == nil {
			i.CancelEdit()
			return nil, false
		}
		if m.OriginalContent == nil {
			original := m.Content
			m.OriginalContent = &original
		}
		m.Content = draft
		m.ShowingOriginal = false
		i.state.EditingMessageID = nil
		i.state.InputDraft = ""
		return m, true
	}

	sentAt := i.now()
	m := &domain.Message{
		ID:             i.newID(c.ID),
		ConversationID: c.ID,
		Role:           domain.RoleBot,
		Content:        draft,
		Timestamp:      sentAt.In(i.location).Format(domain.TimestampLayout),
		SentAt:         sentAt,
	}
	i.messages[c.ID] = append(i.messages[c.ID], m)
	i.state.InputDraft = ""
	return m, true
}

// BeginEdit puts a bot message of the active conversation into edit mode and
// seeds the draft with its current content.
func (i *Inspector) BeginEdit(messageID string) bool {
	c := i.Selected()
	if c == nil {
		return false
	}
	m := i.findMessage(c.ID, messageID)
	if m == nil || m.Role != domain.RoleBot {
		return false
	}
	id := m.ID
	i.state.EditingMessageID = &id
	i.state.InputDraft = m.Content
	return true
}

func (i *Inspector) CancelEdit() {
	i.state.EditingMessageID = nil
	i.state.InputDraft = ""
}

// ToggleShowOriginal flips between the edited and the original text of a
// message in the active conversation.
func (i *Inspector) ToggleShowOriginal(messageID string) (*domain.Message, bool) {
	c := i.Selected()
	if c == nil {
		return nil, false
	}
	m := i.findMessage(c.ID, messageID)
	if m == nil || m.OriginalContent == nil {
		return nil, false
	}
	m.ShowingOriginal = !m.ShowingOriginal
	return m, true
}

func (i *Inspector) findMessage(conversationID, messageID string) *domain.Message {
	for _, m := range i.messages[conversationID] {
		if m.ID == messageID {
			return m
		}
	}
	return nil
}
