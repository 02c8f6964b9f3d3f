package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/team-service/internal/domain"
)

// TaskRepository reads tasks scoped to a team.
type TaskRepository interface {
	ListByTeam(ctx context.Context, teamID string) ([]domain.TaskDetail, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository constructs repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) ListByTeam(ctx context.Context, teamID string) ([]domain.TaskDetail, error) {
	const query = `
        SELECT k.id, k.team_id, k.owner_id, k.assignee_id, k.title, k.description, k.status,
               k.created_at, k.updated_at,
               o.id, o.name, o.email,
               a.id, a.name, a.email,
               t.id, t.name, t.description, t.owner_id, t.created_at, t.updated_at
        FROM tasks k
        JOIN users o ON o.id = k.owner_id
        JOIN users a ON a.id = k.assignee_id
        JOIN teams t ON t.id = k.team_id
        WHERE k.team_id=$1
        ORDER BY k.created_at`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaskDetail
	for rows.Next() {
		var detail domain.TaskDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.TeamID,
			&detail.OwnerID,
			&detail.AssigneeID,
			&detail.Title,
			&detail.Description,
			&detail.Status,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.Owner.ID,
			&detail.Owner.Name,
			&detail.Owner.Email,
			&detail.Assignee.ID,
			&detail.Assignee.Name,
			&detail.Assignee.Email,
			&detail.Team.ID,
			&detail.Team.Name,
			&detail.Team.Description,
			&detail.Team.OwnerID,
			&detail.Team.CreatedAt,
			&detail.Team.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, detail)
	}
	return result, rows.Err()
}
