package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/team-service/internal/domain"
	"github.com/spec-kit/team-service/internal/events"
	"github.com/spec-kit/team-service/internal/repository"
	apperrors "github.com/spec-kit/team-service/pkg/util"
)

// TeamService coordinates team lifecycle and membership workflows.
type TeamService struct {
	users      repository.UserRepository
	teams      repository.TeamRepository
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
}

// TeamDependencies bundles repositories for the team service.
type TeamDependencies struct {
	UserRepo   repository.UserRepository
	TeamRepo   repository.TeamRepository
	TaskRepo   repository.TaskRepository
	Dispatcher events.Dispatcher
}

// TeamCreateInput describes team creation payload.
type TeamCreateInput struct {
	Name        string
	Description string
	OwnerID     string
}

// NewTeamService constructs the service.
func NewTeamService(deps TeamDependencies) *TeamService {
	return &TeamService{
		users:      deps.UserRepo,
		teams:      deps.TeamRepo,
		tasks:      deps.TaskRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTeam creates a team owned by the given user. No uniqueness check
// is performed on the name; store-level failures propagate.
func (s *TeamService) CreateTeam(ctx context.Context, input TeamCreateInput) (*domain.Team, error) {
	team := &domain.Team{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		OwnerID:     input.OwnerID,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:   events.EventTeamCreated,
		TeamID: team.ID,
		Payload: events.TeamCreatedPayload{
			OwnerID: team.OwnerID,
			Name:    team.Name,
		},
	})
	return team, nil
}

// DeleteTeam removes a team. Membership rows cascade at the store level.
func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	deleted, err := s.teams.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("the team you are trying to delete does not exist", nil)
	}
	return nil
}

// GetUserTeams lists teams where the user is owner or member, each
// enriched with the owner's public fields. The user lookup is awaited
// before querying, so a missing user short-circuits with not-found.
func (s *TeamService) GetUserTeams(ctx context.Context, userID string) ([]domain.TeamWithOwner, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, notFoundOr(err, "the user you are trying to get the teams from does not exist")
	}
	teams, err := s.teams.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []domain.TeamWithOwner{}
	}
	return teams, nil
}

// AddMemberByEmail connects the user with the given email into the team's
// member set. The owner counts as a member for the already-present check.
// The insert itself is atomic, so two concurrent adds of the same user
// resolve to a single membership row.
func (s *TeamService) AddMemberByEmail(ctx context.Context, email, teamID string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return notFoundOr(err, "the user you are trying to add to this team does not exist")
	}
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return notFoundOr(err, "team does not exist")
	}

	if team.OwnerID == user.ID {
		return apperrors.NewConflict("this user is already a member of the team", nil)
	}
	added, err := s.teams.AddMember(ctx, team.ID, user.ID)
	if err != nil {
		return err
	}
	if !added {
		return apperrors.NewConflict("this user is already a member of the team", nil)
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventMemberAdded,
		TeamID: team.ID,
		Payload: events.MembershipPayload{
			UserID:   user.ID,
			TeamName: team.Name,
		},
	})
	return nil
}

// RemoveMember disconnects the user from the team's member set and
// returns the team record. Removing a non-member matches nothing and
// still succeeds.
func (s *TeamService) RemoveMember(ctx context.Context, userID, teamID string) (*domain.Team, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "the user you are trying to remove does not exist")
	}
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, notFoundOr(err, "team does not exist")
	}

	if err := s.teams.RemoveMember(ctx, team.ID, user.ID); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventMemberRemoved,
		TeamID: team.ID,
		Payload: events.MembershipPayload{
			UserID:   user.ID,
			TeamName: team.Name,
		},
	})
	return team, nil
}

// GetTeamTasks lists the team's tasks enriched with owner, assignee and
// team details.
func (s *TeamService) GetTeamTasks(ctx context.Context, teamID string) ([]domain.TaskDetail, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, notFoundOr(err, "the team you are trying to get the tasks from does not exist")
	}
	tasks, err := s.tasks.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.TaskDetail{}
	}
	return tasks, nil
}

// GetTeamInfo returns the team with owner and members projected to public
// profile fields. Credentials never leave the repository projection.
func (s *TeamService) GetTeamInfo(ctx context.Context, teamID string) (*domain.TeamInfo, error) {
	info, err := s.teams.GetInfo(ctx, teamID)
	if err != nil {
		return nil, notFoundOr(err, "the team you are trying to get the info from does not exist")
	}
	return info, nil
}

func (s *TeamService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// notFoundOr translates a store-level no-rows result into a business
// not-found with the given message; other errors pass through.
func notFoundOr(err error, message string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(message, nil)
	}
	return err
}
