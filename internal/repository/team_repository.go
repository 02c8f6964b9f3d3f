package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/team-service/internal/domain"
)

// TeamRepository manages persistence for teams and their membership.
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	ListByUser(ctx context.Context, userID string) ([]domain.TeamWithOwner, error)
	AddMember(ctx context.Context, teamID, userID string) (bool, error)
	RemoveMember(ctx context.Context, teamID, userID string) error
	GetInfo(ctx context.Context, id string) (*domain.TeamInfo, error)
}

type teamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository constructs repository.
func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	const query = `
        INSERT INTO teams (name, description, owner_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		team.Name,
		team.Description,
		team.OwnerID,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
}

func (r *teamRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM teams WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	const query = `
        SELECT id, name, description, owner_id, created_at, updated_at
        FROM teams WHERE id=$1`
	var team domain.Team
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.OwnerID,
		&team.CreatedAt,
		&team.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) ListByUser(ctx context.Context, userID string) ([]domain.TeamWithOwner, error) {
	const query = `
        SELECT t.id, t.name, t.description, t.owner_id, t.created_at, t.updated_at,
               o.id, o.name, o.email
        FROM teams t
        JOIN users o ON o.id = t.owner_id
        WHERE t.owner_id = $1
           OR EXISTS (
               SELECT 1 FROM team_members m
               WHERE m.team_id = t.id AND m.user_id = $1
           )
        ORDER BY t.created_at`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TeamWithOwner
	for rows.Next() {
		var tw domain.TeamWithOwner
		if err := rows.Scan(
			&tw.ID,
			&tw.Name,
			&tw.Description,
			&tw.OwnerID,
			&tw.CreatedAt,
			&tw.UpdatedAt,
			&tw.Owner.ID,
			&tw.Owner.Name,
			&tw.Owner.Email,
		); err != nil {
			return nil, err
		}
		result = append(result, tw)
	}
	return result, rows.Err()
}

// AddMember inserts a membership row atomically. ON CONFLICT DO NOTHING
// makes concurrent duplicate adds resolve to a single row; the returned
// bool reports whether a row was actually inserted.
func (r *teamRepository) AddMember(ctx context.Context, teamID, userID string) (bool, error) {
	const query = `
        INSERT INTO team_members (team_id, user_id)
        VALUES ($1,$2)
        ON CONFLICT (team_id, user_id) DO NOTHING`
	cmd, err := r.pool.Exec(ctx, query, teamID, userID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// RemoveMember deletes the membership row atomically. Deleting a
// non-member matches nothing and is not an error.
func (r *teamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	const query = `DELETE FROM team_members WHERE team_id=$1 AND user_id=$2`
	_, err := r.pool.Exec(ctx, query, teamID, userID)
	return err
}

// GetInfo loads the team with owner and members projected to public
// profile fields. The team row doubles as the existence check, so a
// missing team surfaces as pgx.ErrNoRows from the first query.
func (r *teamRepository) GetInfo(ctx context.Context, id string) (*domain.TeamInfo, error) {
	const teamQuery = `
        SELECT t.id, t.name, t.description, t.owner_id, t.created_at, t.updated_at,
               o.id, o.name, o.email, o.photo_url
        FROM teams t
        JOIN users o ON o.id = t.owner_id
        WHERE t.id=$1`
	var info domain.TeamInfo
	if err := r.pool.QueryRow(ctx, teamQuery, id).Scan(
		&info.ID,
		&info.Name,
		&info.Description,
		&info.OwnerID,
		&info.CreatedAt,
		&info.UpdatedAt,
		&info.Owner.ID,
		&info.Owner.Name,
		&info.Owner.Email,
		&info.Owner.PhotoURL,
	); err != nil {
		return nil, err
	}

	const membersQuery = `
        SELECT u.id, u.name, u.email, u.photo_url
        FROM team_members m
        JOIN users u ON u.id = m.user_id
        WHERE m.team_id=$1
        ORDER BY m.added_at`
	rows, err := r.pool.Query(ctx, membersQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	info.Members = make([]domain.MemberProfile, 0)
	for rows.Next() {
		var member domain.MemberProfile
		if err := rows.Scan(&member.ID, &member.Name, &member.Email, &member.PhotoURL); err != nil {
			return nil, err
		}
		info.Members = append(info.Members, member)
	}
	return &info, rows.Err()
}
