package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ba6/gatekeeper/internal/domain/space"
	"github.com/ba6/gatekeeper/internal/infrastructure/persistence/mappers"
	"github.com/ba6/gatekeeper/internal/infrastructure/persistence/models"
	"github.com/ba6/gatekeeper/internal/shared/db"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// SpaceMemberRepositoryImpl implements space.MemberRepository. Like the other
// space repositories it joins a transaction carried by the context.
type SpaceMemberRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SpaceMapper
	logger logger.Interface
}

// NewSpaceMemberRepository creates a new member repository instance
func NewSpaceMemberRepository(db *gorm.DB, logger logger.Interface) space.MemberRepository {
	return &SpaceMemberRepositoryImpl{
		db:     db,
		mapper: mappers.NewSpaceMapper(),
		logger: logger,
	}
}

// Add inserts the membership unless it already exists
func (r *SpaceMemberRepositoryImpl) Add(ctx context.Context, m *space.Member) (bool, error) {
	model := r.mapper.MemberToModel(m)

	result := db.FromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "space_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to add space member",
			"space_id", m.SpaceID(),
			"user_id", m.UserID(),
			"error", result.Error)
		return false, fmt.Errorf("failed to add space member: %w", result.Error)
	}

	created := result.RowsAffected > 0
	if created {
		r.logger.Infow("space member added", "space_id", m.SpaceID(), "user_id", m.UserID())
	}
	return created, nil
}

// Get returns the membership, or nil when the user is not a member
func (r *SpaceMemberRepositoryImpl) Get(ctx context.Context, spaceID, userID string) (*space.Member, error) {
	var model models.SpaceMemberModel
	err := db.FromContext(ctx, r.db).
		Where("space_id = ? AND user_id = ?", spaceID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get space member",
			"space_id", spaceID,
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to get space member: %w", err)
	}
	return r.mapper.MemberToDomain(&model), nil
}

// SpaceThreadRepositoryImpl implements space.ThreadRepository
type SpaceThreadRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SpaceMapper
	logger logger.Interface
}

// NewSpaceThreadRepository creates a new thread repository instance
func NewSpaceThreadRepository(db *gorm.DB, logger logger.Interface) space.ThreadRepository {
	return &SpaceThreadRepositoryImpl{
		db:     db,
		mapper: mappers.NewSpaceMapper(),
		logger: logger,
	}
}

// Create stores a new thread
func (r *SpaceThreadRepositoryImpl) Create(ctx context.Context, t *space.Thread) error {
	if err := db.FromContext(ctx, r.db).Create(r.mapper.ThreadToModel(t)).Error; err != nil {
		r.logger.Errorw("failed to create space thread",
			"space_id", t.SpaceID(),
			"thread_id", t.ID(),
			"error", err)
		return fmt.Errorf("failed to create space thread: %w", err)
	}
	return nil
}

// GetByID returns the thread, or nil when it does not exist
func (r *SpaceThreadRepositoryImpl) GetByID(ctx context.Context, id string) (*space.Thread, error) {
	var model models.SpaceThreadModel
	err := db.FromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get space thread", "thread_id", id, "error", err)
		return nil, fmt.Errorf("failed to get space thread: %w", err)
	}
	return r.mapper.ThreadToDomain(&model), nil
}

// SpaceMessageRepositoryImpl implements space.MessageRepository
type SpaceMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SpaceMapper
	logger logger.Interface
}

// NewSpaceMessageRepository creates a new message repository instance
func NewSpaceMessageRepository(db *gorm.DB, logger logger.Interface) space.MessageRepository {
	return &SpaceMessageRepositoryImpl{
		db:     db,
		mapper: mappers.NewSpaceMapper(),
		logger: logger,
	}
}

// Create stores a new message
func (r *SpaceMessageRepositoryImpl) Create(ctx context.Context, m *space.Message) error {
	if err := db.FromContext(ctx, r.db).Create(r.mapper.MessageToModel(m)).Error; err != nil {
		r.logger.Errorw("failed to create space message",
			"space_id", m.SpaceID(),
			"message_id", m.ID(),
			"error", err)
		return fmt.Errorf("failed to create space message: %w", err)
	}
	return nil
}
