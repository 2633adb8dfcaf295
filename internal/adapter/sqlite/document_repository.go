package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/neomorfeo/homebase/internal/domain"
)

// Compile-time check: DocumentRepository implements domain.DocumentRepository.
var _ domain.DocumentRepository = (*DocumentRepository)(nil)

// DocumentRepository stores document metadata in SQLite.
type DocumentRepository struct {
	db *sql.DB
}

const documentColumns = `id, target_kind, target_id, document_type, file_name, mime_type, size, storage_key,
	locale, status, uploaded_by, description, created_at`

func (r *DocumentRepository) Create(ctx context.Context, d domain.Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (`+documentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, string(d.Target.Kind), d.Target.ID, string(d.Type), d.FileName, d.MimeType, d.Size,
		d.StorageKey, d.Locale, d.Status, d.UploadedBy, d.Description, formatTime(d.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (domain.Document, error) {
	d, err := scanDocument(r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return d, err
}

func (r *DocumentRepository) ListByTarget(ctx context.Context, target domain.AttachableRef) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE target_kind = ? AND target_id = ?
		 ORDER BY created_at, id`,
		string(target.Kind), target.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func scanDocument(row rowScanner) (domain.Document, error) {
	var (
		d             domain.Document
		kind, docType string
		createdAt     string
	)
	err := row.Scan(&d.ID, &kind, &d.Target.ID, &docType, &d.FileName, &d.MimeType, &d.Size,
		&d.StorageKey, &d.Locale, &d.Status, &d.UploadedBy, &d.Description, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Document{}, err
		}
		return domain.Document{}, fmt.Errorf("scanning document: %w", err)
	}
	d.Target.Kind = domain.EntityKind(kind)
	d.Type = domain.DocumentType(docType)
	d.CreatedAt = parseTime(createdAt)
	return d, nil
}
