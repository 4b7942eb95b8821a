package group

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/pkg/user"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	GroupService interface {
		CreateGroup(ctx context.Context, req domain.CreateGroupRequest, userID string) (domain.GroupResponse, error)
		GetMyGroups(ctx context.Context, userID string) ([]domain.GroupResponse, error)
		AddMember(ctx context.Context, groupID string, req domain.AddMemberRequest, userID string) (domain.GroupResponse, error)
		RemoveMember(ctx context.Context, groupID, memberID, userID string) error
		IsMember(ctx context.Context, groupID, userID string) (bool, error)
	}

	groupService struct {
		groupRepository GroupRepository
		userRepository  user.UserRepository
		now             func() time.Time
	}
)

func NewGroupService(groupRepository GroupRepository, userRepository user.UserRepository) GroupService {
	return &groupService{
		groupRepository: groupRepository,
		userRepository:  userRepository,
		now:             time.Now,
	}
}

func toGroupResponse(g *entities.Group) domain.GroupResponse {
	res := domain.GroupResponse{
		ID:        g.ID.String(),
		Name:      g.Name,
		OwnerID:   g.OwnerID.String(),
		Members:   make([]domain.GroupMemberResponse, 0, len(g.Members)),
		CreatedAt: g.CreatedAt,
	}
	for _, m := range g.Members {
		member := domain.GroupMemberResponse{
			UserID:   m.UserID.String(),
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
		if m.User != nil {
			member.Name = m.User.Name
			member.Email = m.User.Email
		}
		res.Members = append(res.Members, member)
	}
	return res
}

func (s *groupService) getGroup(ctx context.Context, groupID string) (*entities.Group, error) {
	if _, err := uuid.Parse(groupID); err != nil {
		return nil, domain.ErrGroupNotFound
	}
	group, err := s.groupRepository.GetGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *groupService) CreateGroup(ctx context.Context, req domain.CreateGroupRequest, userID string) (domain.GroupResponse, error) {
	owner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GroupResponse{}, domain.ErrUserNotFound
		}
		return domain.GroupResponse{}, err
	}

	now := s.now()
	group := &entities.Group{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		OwnerID: owner.ID,
	}
	group.CreatedAt = now
	member := &entities.GroupMember{
		ID:       uuid.New(),
		GroupID:  group.ID,
		UserID:   owner.ID,
		Role:     domain.GroupRoleOwner,
		JoinedAt: now,
		User:     owner,
	}

	if err := s.groupRepository.CreateGroup(ctx, group, member); err != nil {
		return domain.GroupResponse{}, err
	}
	group.Members = []*entities.GroupMember{member}
	return toGroupResponse(group), nil
}

func (s *groupService) GetMyGroups(ctx context.Context, userID string) ([]domain.GroupResponse, error) {
	groups, err := s.groupRepository.GetGroupsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]domain.GroupResponse, 0, len(groups))
	for _, g := range groups {
		res = append(res, toGroupResponse(g))
	}
	return res, nil
}

func (s *groupService) AddMember(ctx context.Context, groupID string, req domain.AddMemberRequest, userID string) (domain.GroupResponse, error) {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return domain.GroupResponse{}, err
	}
	if group.OwnerID.String() != userID {
		return domain.GroupResponse{}, domain.ErrNotGroupOwner
	}

	invitee, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GroupResponse{}, domain.ErrUserNotFound
		}
		return domain.GroupResponse{}, err
	}

	ok, err := s.IsMember(ctx, groupID, invitee.ID.String())
	if err != nil {
		return domain.GroupResponse{}, err
	}
	if ok {
		return domain.GroupResponse{}, domain.ErrAlreadyGroupMember
	}

	if err := s.groupRepository.AddMember(ctx, &entities.GroupMember{
		ID:       uuid.New(),
		GroupID:  group.ID,
		UserID:   invitee.ID,
		Role:     domain.GroupRoleMember,
		JoinedAt: s.now(),
		User:     invitee,
	}); err != nil {
		return domain.GroupResponse{}, err
	}

	updated, err := s.getGroup(ctx, groupID)
	if err != nil {
		return domain.GroupResponse{}, err
	}
	return toGroupResponse(updated), nil
}

func (s *groupService) RemoveMember(ctx context.Context, groupID, memberID, userID string) error {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.OwnerID.String() != userID {
		return domain.ErrNotGroupOwner
	}
	if memberID == group.OwnerID.String() {
		return domain.ErrCannotRemoveOwner
	}

	ok, err := s.IsMember(ctx, groupID, memberID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotGroupMember
	}
	return s.groupRepository.RemoveMember(ctx, groupID, memberID)
}

func (s *groupService) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return false, nil
	}
	_, err := s.groupRepository.GetMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
