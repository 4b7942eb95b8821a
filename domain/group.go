package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateGroup  = "group created successfully"
	MessageSuccessGetGroups    = "groups retrieved successfully"
	MessageSuccessAddMember    = "member added successfully"
	MessageSuccessRemoveMember = "member removed successfully"

	MessageFailedCreateGroup  = "failed to create group"
	MessageFailedGetGroups    = "failed to retrieve groups"
	MessageFailedAddMember    = "failed to add member"
	MessageFailedRemoveMember = "failed to remove member"

	ErrGroupNotFound      = errors.New("group not found")
	ErrNotGroupMember     = errors.New("user is not a member of this group")
	ErrNotGroupOwner      = errors.New("only the group owner can do this")
	ErrAlreadyGroupMember = errors.New("user is already a member of this group")
	ErrCannotRemoveOwner  = errors.New("the group owner cannot be removed")
)

const (
	GroupRoleOwner  = "owner"
	GroupRoleMember = "member"
)

type (
	CreateGroupRequest struct {
		Name string `json:"name" validate:"required,min=1,max=100"`
	}

	AddMemberRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	GroupMemberResponse struct {
		UserID   string    `json:"user_id"`
		Name     string    `json:"name"`
		Email    string    `json:"email"`
		Role     string    `json:"role"`
		JoinedAt time.Time `json:"joined_at"`
	}

	GroupResponse struct {
		ID        string                `json:"id"`
		Name      string                `json:"name"`
		OwnerID   string                `json:"owner_id"`
		Members   []GroupMemberResponse `json:"members"`
		CreatedAt time.Time             `json:"created_at"`
	}
)
