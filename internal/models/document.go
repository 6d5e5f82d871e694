package models

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID         uuid.UUID  `db:"id"`
	Title      string     `db:"title"`
	FilePath   string     `db:"file_path"`
	OwnerID    uuid.UUID  `db:"owner_id"`
	ProjectID  *uuid.UUID `db:"project_id"`
	UploadedAt time.Time  `db:"uploaded_at"`
}
