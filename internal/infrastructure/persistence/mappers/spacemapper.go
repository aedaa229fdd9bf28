package mappers

import (
	"github.com/ba6/gatekeeper/internal/domain/space"
	"github.com/ba6/gatekeeper/internal/infrastructure/persistence/models"
)

// SpaceMapper converts between space entities and their rows
type SpaceMapper interface {
	MemberToModel(m *space.Member) *models.SpaceMemberModel
	MemberToDomain(model *models.SpaceMemberModel) *space.Member
	ThreadToModel(t *space.Thread) *models.SpaceThreadModel
	ThreadToDomain(model *models.SpaceThreadModel) *space.Thread
	MessageToModel(m *space.Message) *models.SpaceMessageModel
}

type SpaceMapperImpl struct{}

func NewSpaceMapper() SpaceMapper {
	return &SpaceMapperImpl{}
}

func (m *SpaceMapperImpl) MemberToModel(member *space.Member) *models.SpaceMemberModel {
	return &models.SpaceMemberModel{
		SpaceID:   member.SpaceID(),
		UserID:    member.UserID(),
		Role:      member.Role(),
		CreatedAt: member.JoinedAt(),
	}
}

func (m *SpaceMapperImpl) MemberToDomain(model *models.SpaceMemberModel) *space.Member {
	if model == nil {
		return nil
	}
	return space.ReconstructMember(model.SpaceID, model.UserID, model.Role, model.CreatedAt)
}

func (m *SpaceMapperImpl) ThreadToModel(t *space.Thread) *models.SpaceThreadModel {
	return &models.SpaceThreadModel{
		ID:        t.ID(),
		SpaceID:   t.SpaceID(),
		AuthorID:  t.AuthorID(),
		Title:     t.Title(),
		CreatedAt: t.CreatedAt(),
	}
}

func (m *SpaceMapperImpl) ThreadToDomain(model *models.SpaceThreadModel) *space.Thread {
	if model == nil {
		return nil
	}
	return space.ReconstructThread(model.ID, model.SpaceID, model.AuthorID, model.Title, model.CreatedAt)
}

func (m *SpaceMapperImpl) MessageToModel(msg *space.Message) *models.SpaceMessageModel {
	return &models.SpaceMessageModel{
		ID:        msg.ID(),
		SpaceID:   msg.SpaceID(),
		ThreadID:  msg.ThreadID(),
		AuthorID:  msg.AuthorID(),
		Body:      msg.Body(),
		CreatedAt: msg.CreatedAt(),
	}
}
