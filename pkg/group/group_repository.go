package group

import (
	"Pantry-Tracker/entities"
	"context"

	"gorm.io/gorm"
)

type (
	GroupRepository interface {
		// CreateGroup stores the group together with its owner membership.
		CreateGroup(ctx context.Context, group *entities.Group, owner *entities.GroupMember) error
		GetGroupByID(ctx context.Context, id string) (*entities.Group, error)
		GetGroupsByUser(ctx context.Context, userID string) ([]*entities.Group, error)
		GetMember(ctx context.Context, groupID, userID string) (*entities.GroupMember, error)
		AddMember(ctx context.Context, member *entities.GroupMember) error
		RemoveMember(ctx context.Context, groupID, userID string) error
	}

	groupRepository struct {
		db *gorm.DB
	}
)

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) CreateGroup(ctx context.Context, group *entities.Group, owner *entities.GroupMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Owner", "Members").Create(group).Error; err != nil {
			return err
		}
		return tx.Omit("User", "Group").Create(owner).Error
	})
}

func (r *groupRepository) GetGroupByID(ctx context.Context, id string) (*entities.Group, error) {
	var group entities.Group
	if err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at asc") }).
		Preload("Members.User").
		Where("id = ?", id).
		First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) GetGroupsByUser(ctx context.Context, userID string) ([]*entities.Group, error) {
	var groups []*entities.Group
	if err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at asc") }).
		Preload("Members.User").
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at asc").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) GetMember(ctx context.Context, groupID, userID string) (*entities.GroupMember, error) {
	var member entities.GroupMember
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *groupRepository) AddMember(ctx context.Context, member *entities.GroupMember) error {
	return r.db.WithContext(ctx).Omit("User", "Group").Create(member).Error
}

func (r *groupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	return r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&entities.GroupMember{}).Error
}
