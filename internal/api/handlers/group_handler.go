package handlers

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/api/presenters"
	"Pantry-Tracker/pkg/group"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GroupHandler interface {
		CreateGroup(c *fiber.Ctx) error
		GetMyGroups(c *fiber.Ctx) error
		AddMember(c *fiber.Ctx) error
		RemoveMember(c *fiber.Ctx) error
	}

	groupHandler struct {
		groupService group.GroupService
		validator    *validator.Validate
	}
)

func NewGroupHandler(groupService group.GroupService, validator *validator.Validate) GroupHandler {
	return &groupHandler{
		groupService: groupService,
		validator:    validator,
	}
}

func (h *groupHandler) CreateGroup(c *fiber.Ctx) error {
	req := new(domain.CreateGroupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateGroup, err)
	}

	res, err := h.groupService.CreateGroup(c.Context(), *req, currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateGroup, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateGroup)
}

func (h *groupHandler) GetMyGroups(c *fiber.Ctx) error {
	res, err := h.groupService.GetMyGroups(c.Context(), currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetGroups, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGroups)
}

func (h *groupHandler) AddMember(c *fiber.Ctx) error {
	req := new(domain.AddMemberRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMember, err)
	}

	res, err := h.groupService.AddMember(c.Context(), c.Params("id"), *req, currentUser(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddMember, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAddMember)
}

func (h *groupHandler) RemoveMember(c *fiber.Ctx) error {
	if err := h.groupService.RemoveMember(c.Context(), c.Params("id"), c.Params("userId"), currentUser(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRemoveMember, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveMember)
}
