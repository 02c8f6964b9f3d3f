package dto

import (
	"time"

	"github.com/spec-kit/team-service/internal/domain"
)

// CreateTeamRequest payload for team creation.
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id"`
}

// AddMemberRequest payload for adding a member by email.
type AddMemberRequest struct {
	Email string `json:"email"`
}

// TeamResponse is the serialized team record.
type TeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamWithOwnerResponse pairs a team with its owner's public fields.
type TeamWithOwnerResponse struct {
	TeamResponse
	Owner domain.UserSummary `json:"owner"`
}

// TeamInfoResponse is the enriched team read model.
type TeamInfoResponse struct {
	TeamResponse
	Owner   domain.MemberProfile   `json:"owner"`
	Members []domain.MemberProfile `json:"members"`
}

// TaskDetailResponse serializes a task with its related records.
type TaskDetailResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      domain.TaskStatus  `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	Owner       domain.UserSummary `json:"owner"`
	Assignee    domain.UserSummary `json:"assignee"`
	Team        TeamResponse       `json:"team"`
}

// NewTeamResponse maps a domain team.
func NewTeamResponse(team *domain.Team) TeamResponse {
	return TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		OwnerID:     team.OwnerID,
		CreatedAt:   team.CreatedAt,
		UpdatedAt:   team.UpdatedAt,
	}
}

// NewTeamWithOwnerResponse maps a team listing row.
func NewTeamWithOwnerResponse(tw domain.TeamWithOwner) TeamWithOwnerResponse {
	return TeamWithOwnerResponse{
		TeamResponse: NewTeamResponse(&tw.Team),
		Owner:        tw.Owner,
	}
}

// NewTeamInfoResponse maps the enriched team read model.
func NewTeamInfoResponse(info *domain.TeamInfo) TeamInfoResponse {
	return TeamInfoResponse{
		TeamResponse: NewTeamResponse(&info.Team),
		Owner:        info.Owner,
		Members:      info.Members,
	}
}

// NewTaskDetailResponse maps an enriched task.
func NewTaskDetailResponse(detail domain.TaskDetail) TaskDetailResponse {
	return TaskDetailResponse{
		ID:          detail.ID,
		Title:       detail.Title,
		Description: detail.Description,
		Status:      detail.Status,
		CreatedAt:   detail.CreatedAt,
		Owner:       detail.Owner,
		Assignee:    detail.Assignee,
		Team:        NewTeamResponse(&detail.Team),
	}
}
