package space

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Gated actions performed on spaces
const (
	ActionJoin         = "join"
	ActionSendMessage  = "send_message"
	ActionCreateThread = "create_thread"
)

const (
	RoleMember = "member"

	MaxThreadTitleLength = 200
	MaxMessageLength     = 4000
)

var (
	ErrSpaceIDRequired  = errors.New("space ID is required")
	ErrUserIDRequired   = errors.New("user ID is required")
	ErrTitleRequired    = errors.New("thread title is required")
	ErrTitleTooLong     = fmt.Errorf("thread title exceeds %d characters", MaxThreadTitleLength)
	ErrBodyRequired     = errors.New("message body is required")
	ErrBodyTooLong      = fmt.Errorf("message body exceeds %d characters", MaxMessageLength)
	ErrThreadNotInSpace = errors.New("thread does not belong to space")
)

// Member is a user's membership of a space
type Member struct {
	spaceID  string
	userID   string
	role     string
	joinedAt time.Time
}

// NewMember creates a regular membership
func NewMember(spaceID, userID string) (*Member, error) {
	if strings.TrimSpace(spaceID) == "" {
		return nil, ErrSpaceIDRequired
	}
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}
	return &Member{
		spaceID:  spaceID,
		userID:   userID,
		role:     RoleMember,
		joinedAt: time.Now().UTC(),
	}, nil
}

// ReconstructMember rebuilds a membership from persistence
func ReconstructMember(spaceID, userID, role string, joinedAt time.Time) *Member {
	return &Member{spaceID: spaceID, userID: userID, role: role, joinedAt: joinedAt}
}

func (m *Member) SpaceID() string     { return m.spaceID }
func (m *Member) UserID() string      { return m.userID }
func (m *Member) Role() string        { return m.role }
func (m *Member) JoinedAt() time.Time { return m.joinedAt }

// Thread is a titled discussion inside a space
type Thread struct {
	id        string
	spaceID   string
	authorID  string
	title     string
	createdAt time.Time
}

// NewThread validates the title and assigns a new ID
func NewThread(spaceID, authorID, title string) (*Thread, error) {
	if strings.TrimSpace(spaceID) == "" {
		return nil, ErrSpaceIDRequired
	}
	if strings.TrimSpace(authorID) == "" {
		return nil, ErrUserIDRequired
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxThreadTitleLength {
		return nil, ErrTitleTooLong
	}
	return &Thread{
		id:        uuid.NewString(),
		spaceID:   spaceID,
		authorID:  authorID,
		title:     title,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructThread rebuilds a thread from persistence
func ReconstructThread(id, spaceID, authorID, title string, createdAt time.Time) *Thread {
	return &Thread{id: id, spaceID: spaceID, authorID: authorID, title: title, createdAt: createdAt}
}

func (t *Thread) ID() string           { return t.id }
func (t *Thread) SpaceID() string      { return t.spaceID }
func (t *Thread) AuthorID() string     { return t.authorID }
func (t *Thread) Title() string        { return t.title }
func (t *Thread) CreatedAt() time.Time { return t.createdAt }

// Message is a post in a space, optionally inside a thread
type Message struct {
	id        string
	spaceID   string
	threadID  *string
	authorID  string
	body      string
	createdAt time.Time
}

// NewMessage validates the body and assigns a new ID. threadID may be nil.
func NewMessage(spaceID, authorID, body string, threadID *string) (*Message, error) {
	if strings.TrimSpace(spaceID) == "" {
		return nil, ErrSpaceIDRequired
	}
	if strings.TrimSpace(authorID) == "" {
		return nil, ErrUserIDRequired
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrBodyRequired
	}
	if utf8.RuneCountInString(body) > MaxMessageLength {
		return nil, ErrBodyTooLong
	}
	return &Message{
		id:        uuid.NewString(),
		spaceID:   spaceID,
		threadID:  threadID,
		authorID:  authorID,
		body:      body,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructMessage rebuilds a message from persistence
func ReconstructMessage(id, spaceID string, threadID *string, authorID, body string, createdAt time.Time) *Message {
	return &Message{id: id, spaceID: spaceID, threadID: threadID, authorID: authorID, body: body, createdAt: createdAt}
}

func (m *Message) ID() string           { return m.id }
func (m *Message) SpaceID() string      { return m.spaceID }
func (m *Message) ThreadID() *string    { return m.threadID }
func (m *Message) AuthorID() string     { return m.authorID }
func (m *Message) Body() string         { return m.body }
func (m *Message) CreatedAt() time.Time { return m.createdAt }
