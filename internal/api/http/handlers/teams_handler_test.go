package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/team-service/internal/api/http"
	"github.com/spec-kit/team-service/internal/api/http/handlers"
	"github.com/spec-kit/team-service/internal/domain"
	"github.com/spec-kit/team-service/internal/events"
	"github.com/spec-kit/team-service/internal/observability"
	"github.com/spec-kit/team-service/internal/service"
)

// Stub repositories with function fields; unset methods fail the lookup.

type userRepoStub struct {
	getByID    func(ctx context.Context, id string) (*domain.User, error)
	getByEmail func(ctx context.Context, email string) (*domain.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *userRepoStub) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.getByID == nil {
		return nil, pgx.ErrNoRows
	}
	return s.getByID(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.getByEmail == nil {
		return nil, pgx.ErrNoRows
	}
	return s.getByEmail(ctx, email)
}

type teamRepoStub struct {
	create       func(ctx context.Context, team *domain.Team) error
	delete       func(ctx context.Context, id string) (bool, error)
	getByID      func(ctx context.Context, id string) (*domain.Team, error)
	listByUser   func(ctx context.Context, userID string) ([]domain.TeamWithOwner, error)
	addMember    func(ctx context.Context, teamID, userID string) (bool, error)
	removeMember func(ctx context.Context, teamID, userID string) error
	getInfo      func(ctx context.Context, id string) (*domain.TeamInfo, error)
}

func (s *teamRepoStub) Create(ctx context.Context, team *domain.Team) error {
	if s.create == nil {
		return nil
	}
	return s.create(ctx, team)
}

func (s *teamRepoStub) Delete(ctx context.Context, id string) (bool, error) {
	if s.delete == nil {
		return false, nil
	}
	return s.delete(ctx, id)
}

func (s *teamRepoStub) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	if s.getByID == nil {
		return nil, pgx.ErrNoRows
	}
	return s.getByID(ctx, id)
}

func (s *teamRepoStub) ListByUser(ctx context.Context, userID string) ([]domain.TeamWithOwner, error) {
	if s.listByUser == nil {
		return nil, nil
	}
	return s.listByUser(ctx, userID)
}

func (s *teamRepoStub) AddMember(ctx context.Context, teamID, userID string) (bool, error) {
	if s.addMember == nil {
		return true, nil
	}
	return s.addMember(ctx, teamID, userID)
}

func (s *teamRepoStub) RemoveMember(ctx context.Context, teamID, userID string) error {
	if s.removeMember == nil {
		return nil
	}
	return s.removeMember(ctx, teamID, userID)
}

func (s *teamRepoStub) GetInfo(ctx context.Context, id string) (*domain.TeamInfo, error) {
	if s.getInfo == nil {
		return nil, pgx.ErrNoRows
	}
	return s.getInfo(ctx, id)
}

type taskRepoStub struct {
	listByTeam func(ctx context.Context, teamID string) ([]domain.TaskDetail, error)
}

func (s *taskRepoStub) ListByTeam(ctx context.Context, teamID string) ([]domain.TaskDetail, error) {
	if s.listByTeam == nil {
		return nil, nil
	}
	return s.listByTeam(ctx, teamID)
}

func newTestApp(users *userRepoStub, teams *teamRepoStub, tasks *taskRepoStub) *fiber.App {
	teamService := service.NewTeamService(service.TeamDependencies{
		UserRepo:   users,
		TeamRepo:   teams,
		TaskRepo:   tasks,
		Dispatcher: events.NewInMemoryDispatcher(),
	})

	handler := handlers.NewTeamsHandler(teamService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	app.Post("/teams", handler.CreateTeam)
	app.Delete("/teams/:id", handler.DeleteTeam)
	app.Get("/teams/users/:userId", handler.ListUserTeams)
	app.Get("/teams/:id/info", handler.GetInfo)
	app.Get("/teams/:id/tasks", handler.ListTasks)
	app.Post("/teams/:id/members", handler.AddMember)
	app.Delete("/teams/:id/members/:userId", handler.RemoveMember)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestCreateTeamReturnsCreated(t *testing.T) {
	teams := &teamRepoStub{
		create: func(ctx context.Context, team *domain.Team) error {
			team.ID = "t1"
			return nil
		},
	}
	app := newTestApp(&userRepoStub{}, teams, &taskRepoStub{})

	payload, _ := json.Marshal(map[string]string{"name": "Eng", "owner_id": "u1"})
	req := httptest.NewRequest(http.MethodPost, "/teams", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	require.Equal(t, "t1", data["id"])
	require.Equal(t, "Eng", data["name"])
}

func TestCreateTeamRejectsMissingFields(t *testing.T) {
	app := newTestApp(&userRepoStub{}, &teamRepoStub{}, &taskRepoStub{})

	payload, _ := json.Marshal(map[string]string{"name": "Eng"})
	req := httptest.NewRequest(http.MethodPost, "/teams", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	errBody := body["error"].(map[string]any)
	require.Equal(t, "VALIDATION_FAILED", errBody["code"])
}

func TestDeleteMissingTeamMapsToNotFound(t *testing.T) {
	app := newTestApp(&userRepoStub{}, &teamRepoStub{}, &taskRepoStub{})

	req := httptest.NewRequest(http.MethodDelete, "/teams/missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	errBody := body["error"].(map[string]any)
	require.Equal(t, "NOT_FOUND", errBody["code"])
}

func TestAddMemberAlreadyMemberMapsToConflict(t *testing.T) {
	users := &userRepoStub{
		getByEmail: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u2", Email: email}, nil
		},
	}
	teams := &teamRepoStub{
		getByID: func(ctx context.Context, id string) (*domain.Team, error) {
			return &domain.Team{ID: id, Name: "Eng", OwnerID: "u1"}, nil
		},
		addMember: func(ctx context.Context, teamID, userID string) (bool, error) {
			return false, nil
		},
	}
	app := newTestApp(users, teams, &taskRepoStub{})

	payload, _ := json.Marshal(map[string]string{"email": "bob@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/teams/t1/members", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAddMemberReturnsOnlyMessage(t *testing.T) {
	users := &userRepoStub{
		getByEmail: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u2", Email: email}, nil
		},
	}
	teams := &teamRepoStub{
		getByID: func(ctx context.Context, id string) (*domain.Team, error) {
			return &domain.Team{ID: id, Name: "Eng", OwnerID: "u1"}, nil
		},
	}
	app := newTestApp(users, teams, &taskRepoStub{})

	payload, _ := json.Marshal(map[string]string{"email": "bob@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/teams/t1/members", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	require.Equal(t, "user added to the team", data["message"])
	require.NotContains(t, data, "team")
}

func TestRemoveMemberReturnsTeam(t *testing.T) {
	users := &userRepoStub{
		getByID: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id}, nil
		},
	}
	teams := &teamRepoStub{
		getByID: func(ctx context.Context, id string) (*domain.Team, error) {
			return &domain.Team{ID: id, Name: "Eng", OwnerID: "u1"}, nil
		},
	}
	app := newTestApp(users, teams, &taskRepoStub{})

	req := httptest.NewRequest(http.MethodDelete, "/teams/t1/members/u2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	team := data["team"].(map[string]any)
	require.Equal(t, "t1", team["id"])
}

func TestGetInfoMissingTeamMapsToNotFound(t *testing.T) {
	app := newTestApp(&userRepoStub{}, &teamRepoStub{}, &taskRepoStub{})

	req := httptest.NewRequest(http.MethodGet, "/teams/missing/info", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetInfoOmitsCredentials(t *testing.T) {
	teams := &teamRepoStub{
		getInfo: func(ctx context.Context, id string) (*domain.TeamInfo, error) {
			return &domain.TeamInfo{
				Team:    domain.Team{ID: id, Name: "Eng", OwnerID: "u1"},
				Owner:   domain.MemberProfile{ID: "u1", Name: "Ana", Email: "ana@example.com"},
				Members: []domain.MemberProfile{},
			}, nil
		},
	}
	app := newTestApp(&userRepoStub{}, teams, &taskRepoStub{})

	req := httptest.NewRequest(http.MethodGet, "/teams/t1/info", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw bytes.Buffer
	_, err = raw.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.NotContains(t, raw.String(), "password")
	require.NotContains(t, raw.String(), "refresh")
	require.Contains(t, raw.String(), `"members":[]`)
}

func TestListUserTeamsMissingUserMapsToNotFound(t *testing.T) {
	app := newTestApp(&userRepoStub{}, &teamRepoStub{}, &taskRepoStub{})

	req := httptest.NewRequest(http.MethodGet, "/teams/users/ghost", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListTasksReturnsEnrichedRows(t *testing.T) {
	teams := &teamRepoStub{
		getByID: func(ctx context.Context, id string) (*domain.Team, error) {
			return &domain.Team{ID: id, Name: "Eng", OwnerID: "u1"}, nil
		},
	}
	tasks := &taskRepoStub{
		listByTeam: func(ctx context.Context, teamID string) ([]domain.TaskDetail, error) {
			return []domain.TaskDetail{
				{
					Task:     domain.Task{ID: "k1", TeamID: teamID, Title: "Ship it", Status: domain.TaskStatusPending},
					Owner:    domain.UserSummary{ID: "u1", Name: "Ana", Email: "ana@example.com"},
					Assignee: domain.UserSummary{ID: "u2", Name: "Bob", Email: "bob@example.com"},
					Team:     domain.Team{ID: teamID, Name: "Eng", OwnerID: "u1"},
				},
			}, nil
		},
	}
	app := newTestApp(&userRepoStub{}, teams, tasks)

	req := httptest.NewRequest(http.MethodGet, "/teams/t1/tasks", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	items := body["data"].([]any)
	require.Len(t, items, 1)
	task := items[0].(map[string]any)
	require.Equal(t, "Ship it", task["title"])
	require.Equal(t, "Bob", task["assignee"].(map[string]any)["name"])
	require.Equal(t, "Eng", task["team"].(map[string]any)["name"])
}
