package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/team-service/internal/api/dto"
	"github.com/spec-kit/team-service/internal/service"
	apperrors "github.com/spec-kit/team-service/pkg/util"
)

// TeamsHandler exposes team lifecycle and membership endpoints.
type TeamsHandler struct {
	service *service.TeamService
}

// NewTeamsHandler constructs handler.
func NewTeamsHandler(teamService *service.TeamService) *TeamsHandler {
	return &TeamsHandler{service: teamService}
}

// CreateTeam POST /teams.
func (h *TeamsHandler) CreateTeam(c *fiber.Ctx) error {
	var req dto.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.OwnerID == "" {
		return apperrors.NewValidationError("name and owner_id required", nil)
	}

	team, err := h.service.CreateTeam(c.UserContext(), service.TeamCreateInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTeamResponse(team)})
}

// DeleteTeam DELETE /teams/:id.
func (h *TeamsHandler) DeleteTeam(c *fiber.Ctx) error {
	if err := h.service.DeleteTeam(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "team deleted"}})
}

// ListUserTeams GET /teams/users/:userId.
func (h *TeamsHandler) ListUserTeams(c *fiber.Ctx) error {
	teams, err := h.service.GetUserTeams(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	items := make([]dto.TeamWithOwnerResponse, 0, len(teams))
	for _, team := range teams {
		items = append(items, dto.NewTeamWithOwnerResponse(team))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddMember POST /teams/:id/members.
func (h *TeamsHandler) AddMember(c *fiber.Ctx) error {
	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	if err := h.service.AddMemberByEmail(c.UserContext(), req.Email, c.Params("id")); err != nil {
		return err
	}
	// Only a confirmation message; the updated team is not returned.
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "user added to the team"}})
}

// RemoveMember DELETE /teams/:id/members/:userId.
func (h *TeamsHandler) RemoveMember(c *fiber.Ctx) error {
	team, err := h.service.RemoveMember(c.UserContext(), c.Params("userId"), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"message": "user removed from the team",
		"team":    dto.NewTeamResponse(team),
	}})
}

// ListTasks GET /teams/:id/tasks.
func (h *TeamsHandler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.service.GetTeamTasks(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TaskDetailResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, dto.NewTaskDetailResponse(task))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetInfo GET /teams/:id/info.
func (h *TeamsHandler) GetInfo(c *fiber.Ctx) error {
	info, err := h.service.GetTeamInfo(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTeamInfoResponse(info)})
}
