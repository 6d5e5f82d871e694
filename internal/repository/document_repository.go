package repository

import (
	"context"
	"errors"

	"github.com/Pramod3245/Doc-agents/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DocumentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDocumentRepository(db *pgxpool.Pool, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := squirrel.Insert("documents").
		Columns("id", "title", "file_path", "owner_id", "project_id", "uploaded_at").
		Values(doc.ID, doc.Title, doc.FilePath, doc.OwnerID, doc.ProjectID, doc.UploadedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := squirrel.Select("id", "title", "file_path", "owner_id", "project_id", "uploaded_at").
		From("documents").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var doc models.Document
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&doc.ID, &doc.Title, &doc.FilePath, &doc.OwnerID, &doc.ProjectID, &doc.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	return &doc, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("documents").
		Where(squirrel.Eq{"id": id}).
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

// ListByProjectID returns a project's documents ordered by upload time,
// ties broken by id, so batch processing input is stable.
func (r *DocumentRepository) ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*models.Document, error) {
	query := squirrel.Select("id", "title", "file_path", "owner_id", "project_id", "uploaded_at").
		From("documents").
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("uploaded_at ASC", "id ASC").
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

	var documents []*models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID, &doc.Title, &doc.FilePath, &doc.OwnerID, &doc.ProjectID, &doc.UploadedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, &doc)
	}

	return documents, nil
}

func (r *DocumentRepository) ListByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Document, error) {
	query := squirrel.Select("id", "title", "file_path", "owner_id", "project_id", "uploaded_at").
		From("documents").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("uploaded_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
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

	var documents []*models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID, &doc.Title, &doc.FilePath, &doc.OwnerID, &doc.ProjectID, &doc.UploadedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, &doc)
	}

	return documents, nil
}
