package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/homebase/internal/domain"
)

// Compile-time check: PropertyRepository implements domain.PropertyRepository.
var _ domain.PropertyRepository = (*PropertyRepository)(nil)

// PropertyRepository implements domain.PropertyRepository using SQLite.
type PropertyRepository struct {
	db *sql.DB
}

const propertyColumns = `id, landlord_id, status, attributes, ho_reviewer_id, ho_reviewed_at, ho_comments,
	version, created_at, updated_at, deleted_at`

func (r *PropertyRepository) Create(ctx context.Context, p domain.Property) error {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return fmt.Errorf("encoding property attributes: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO properties (id, landlord_id, status, city, attributes, ho_reviewer_id, ho_reviewed_at,
		 ho_comments, version, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.LandlordID, string(p.Status), p.Attributes.City, string(attrs),
		nullString(p.Review.ReviewerID), nullTime(p.Review.ReviewedAt), nullString(p.Review.Comments),
		p.Version, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (domain.Property, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = ? AND deleted_at IS NULL`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Property{}, domain.ErrPropertyNotFound
	}
	return p, err
}

func (r *PropertyRepository) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE deleted_at IS NULL`
	var args []any

	if filter.Status != nil {
		query += ` AND status = ?`
		args = append(args, string(*filter.Status))
	}
	if filter.LandlordID != "" {
		query += ` AND landlord_id = ?`
		args = append(args, filter.LandlordID)
	}
	if filter.City != "" {
		query += ` AND city = ? COLLATE NOCASE`
		args = append(args, filter.City)
	}

	query += ` ORDER BY created_at DESC, id`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += ` LIMIT -1`
		}
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer rows.Close()

	properties := make([]domain.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}

	return properties, rows.Err()
}

// Update writes p if the stored version equals p.Version, and bumps the
// stored version.
func (r *PropertyRepository) Update(ctx context.Context, p domain.Property) error {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return fmt.Errorf("encoding property attributes: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE properties SET status = ?, city = ?, attributes = ?, ho_reviewer_id = ?, ho_reviewed_at = ?,
		 ho_comments = ?, updated_at = ?, version = version + 1
		 WHERE id = ? AND version = ? AND deleted_at IS NULL`,
		string(p.Status), p.Attributes.City, string(attrs),
		nullString(p.Review.ReviewerID), nullTime(p.Review.ReviewedAt), nullString(p.Review.Comments),
		formatTime(p.UpdatedAt), p.ID, p.Version,
	)
	if err != nil {
		return fmt.Errorf("updating property: %w", err)
	}
	return r.checkWritten(ctx, result, p.ID)
}

func (r *PropertyRepository) SoftDelete(ctx context.Context, id string, version int64, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE properties SET deleted_at = ?, updated_at = ?, version = version + 1
		 WHERE id = ? AND version = ? AND deleted_at IS NULL`,
		formatTime(at), formatTime(at), id, version,
	)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}
	return r.checkWritten(ctx, result, id)
}

func (r *PropertyRepository) CountByStatus(ctx context.Context, statuses ...domain.PropertyStatus) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	args := make([]any, len(statuses))
	for i, s := range statuses {
		args[i] = string(s)
	}

	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM properties WHERE deleted_at IS NULL AND status IN (`+placeholders(len(args))+`)`,
		args...,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting properties: %w", err)
	}
	return n, nil
}

// checkWritten turns a zero-row conditional write into NotFound or a version conflict.
func (r *PropertyRepository) checkWritten(ctx context.Context, result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM properties WHERE id = ? AND deleted_at IS NULL)`, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking property existence: %w", err)
	}
	if !exists {
		return domain.ErrPropertyNotFound
	}
	return domain.ErrVersionConflict
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (domain.Property, error) {
	var (
		p                                domain.Property
		status, attrs                    string
		reviewerID, reviewedAt, comments sql.NullString
		createdAt, updatedAt             string
		deletedAt                        sql.NullString
	)

	err := row.Scan(&p.ID, &p.LandlordID, &status, &attrs, &reviewerID, &reviewedAt, &comments,
		&p.Version, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Property{}, err
		}
		return domain.Property{}, fmt.Errorf("scanning property: %w", err)
	}

	if err := json.Unmarshal([]byte(attrs), &p.Attributes); err != nil {
		return domain.Property{}, fmt.Errorf("decoding attributes of property %s: %w", p.ID, err)
	}

	p.Status = domain.PropertyStatus(status)
	p.Review = domain.Review{
		ReviewerID: reviewerID.String,
		ReviewedAt: parseNullTime(reviewedAt),
		Comments:   comments.String,
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	p.DeletedAt = parseNullTime(deletedAt)

	return p, nil
}
