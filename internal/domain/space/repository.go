package space

import "context"

// MemberRepository persists space memberships
type MemberRepository interface {
	// Add stores the membership. It reports false without error when the user
	// is already a member.
	Add(ctx context.Context, m *Member) (bool, error)

	// Get returns the membership, or nil when the user is not a member
	Get(ctx context.Context, spaceID, userID string) (*Member, error)
}

// ThreadRepository persists threads
type ThreadRepository interface {
	Create(ctx context.Context, t *Thread) error

	// GetByID returns the thread, or nil when it does not exist
	GetByID(ctx context.Context, id string) (*Thread, error)
}

// MessageRepository persists messages
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
}
