package models

import (
	"time"

	"github.com/ba6/gatekeeper/internal/shared/constants"
)

// SpaceMemberModel records that a user joined a space
type SpaceMemberModel struct {
	ID        uint   `gorm:"primarykey"`
	SpaceID   string `gorm:"not null;size:255;uniqueIndex:idx_space_member,priority:1"`
	UserID    string `gorm:"not null;size:64;uniqueIndex:idx_space_member,priority:2;index"`
	Role      string `gorm:"not null;size:20;default:member"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (SpaceMemberModel) TableName() string {
	return constants.TableSpaceMembers
}

// SpaceThreadModel is a discussion thread inside a space
type SpaceThreadModel struct {
	ID        string `gorm:"primaryKey;type:text"`
	SpaceID   string `gorm:"not null;size:255;index:idx_space_threads_space,priority:1"`
	AuthorID  string `gorm:"not null;size:64"`
	Title     string `gorm:"not null;size:200"`
	CreatedAt time.Time `gorm:"index:idx_space_threads_space,priority:2"`
}

// TableName specifies the table name for GORM
func (SpaceThreadModel) TableName() string {
	return constants.TableSpaceThreads
}

// SpaceMessageModel is a message posted to a space, optionally inside a thread
type SpaceMessageModel struct {
	ID        string  `gorm:"primaryKey;type:text"`
	SpaceID   string  `gorm:"not null;size:255;index:idx_space_messages_space,priority:1"`
	ThreadID  *string `gorm:"size:64;index"`
	AuthorID  string  `gorm:"not null;size:64"`
	Body      string  `gorm:"not null;type:text"`
	CreatedAt time.Time `gorm:"index:idx_space_messages_space,priority:2"`
}

// TableName specifies the table name for GORM
func (SpaceMessageModel) TableName() string {
	return constants.TableSpaceMessages
}
