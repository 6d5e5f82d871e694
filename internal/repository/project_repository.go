package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Pramod3245/Doc-agents/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := squirrel.Insert("projects").
		Columns("id", "name", "description", "owner_id", "created_at").
		Values(project.ID, project.Name, project.Description, project.OwnerID, project.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := squirrel.Select("id", "name", "description", "owner_id", "created_at").
		From("projects").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var project models.Project
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&project.ID, &project.Name, &project.Description, &project.OwnerID, &project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	return &project, nil
}

// ListByUserID returns projects the user owns or is a member of.
func (r *ProjectRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	query := squirrel.Select("p.id", "p.name", "p.description", "p.owner_id", "p.created_at").
		Distinct().
		From("projects p").
		LeftJoin("project_members m ON m.project_id = p.id").
		Where(squirrel.Or{
			squirrel.Eq{"p.owner_id": userID},
			squirrel.Eq{"m.user_id": userID},
		}).
		OrderBy("p.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var project models.Project
		if err := rows.Scan(
			&project.ID, &project.Name, &project.Description, &project.OwnerID, &project.CreatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, &project)
	}

	return projects, nil
}

func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID uuid.UUID) error {
	query := squirrel.Insert("project_members").
		Columns("project_id", "user_id", "added_at").
		Values(projectID, userID, time.Now()).
		Suffix("ON CONFLICT (project_id, user_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	query := squirrel.Delete("project_members").
		Where(squirrel.Eq{"project_id": projectID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *ProjectRepository) ListMemberIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	query := squirrel.Select("user_id").
		From("project_members").
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("added_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
