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

// Compile-time check: ListingRepository implements domain.ListingRepository.
var _ domain.ListingRepository = (*ListingRepository)(nil)

// ListingRepository implements domain.ListingRepository using SQLite.
type ListingRepository struct {
	db *sql.DB
}

const listingColumns = `l.id, l.property_id, l.status, l.monthly_rent, l.security_deposit, l.condo_fees,
	l.duration_years, l.checklist_data, l.ho_reviewer_id, l.ho_comments, l.submitted_at, l.reviewed_at,
	l.approved_at, l.published_at, l.version, l.created_at, l.updated_at, l.deleted_at`

// Create inserts l in the same statement that checks its property is
// approved. The partial unique index rejects a second live listing.
func (r *ListingRepository) Create(ctx context.Context, l domain.Listing) error {
	checklist, err := encodeChecklist(l.Terms.Checklist)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO listings (id, property_id, status, monthly_rent, security_deposit, condo_fees,
		 duration_years, checklist_data, version, created_at, updated_at)
		 SELECT ?, p.id, ?, ?, ?, ?, ?, ?, ?, ?, ?
		 FROM properties p
		 WHERE p.id = ? AND p.status = ? AND p.deleted_at IS NULL`,
		l.ID, string(l.Status), int64(l.Terms.MonthlyRent), int64(l.Terms.SecurityDeposit),
		nullCents(l.Terms.CondoFees), l.Terms.DurationYears, checklist,
		l.Version, formatTime(l.CreatedAt), formatTime(l.UpdatedAt),
		l.PropertyID, string(domain.PropertyApproved),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Entity: domain.EntityListing,
				Key:    l.PropertyID,
				Reason: "property already has a listing",
			}
		}
		return fmt.Errorf("inserting listing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	// Nothing inserted: the property is missing or not approved.
	var status string
	err = r.db.QueryRowContext(ctx,
		`SELECT status FROM properties WHERE id = ? AND deleted_at IS NULL`, l.PropertyID,
	).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrPropertyNotFound
	}
	if err != nil {
		return fmt.Errorf("reading property status: %w", err)
	}
	return &domain.TransitionError{
		Entity:  domain.EntityProperty,
		Event:   domain.EventOpenListing,
		Current: status,
	}
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	l, err := scanListing(r.db.QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM listings l WHERE l.id = ? AND l.deleted_at IS NULL`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	return l, err
}

func (r *ListingRepository) GetByPropertyID(ctx context.Context, propertyID string) (domain.Listing, error) {
	l, err := scanListing(r.db.QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM listings l WHERE l.property_id = ? AND l.deleted_at IS NULL`, propertyID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	return l, err
}

func (r *ListingRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings l`
	var args []any

	if filter.LandlordID != "" {
		query += ` JOIN properties p ON p.id = l.property_id AND p.landlord_id = ?`
		args = append(args, filter.LandlordID)
	}

	query += ` WHERE l.deleted_at IS NULL`

	if filter.Status != nil {
		query += ` AND l.status = ?`
		args = append(args, string(*filter.Status))
	}
	if filter.PropertyID != "" {
		query += ` AND l.property_id = ?`
		args = append(args, filter.PropertyID)
	}

	query += ` ORDER BY l.created_at DESC, l.id`

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
		return nil, fmt.Errorf("listing listings: %w", err)
	}
	defer rows.Close()

	listings := make([]domain.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

// Update writes l if the stored version equals l.Version, and bumps the
// stored version.
func (r *ListingRepository) Update(ctx context.Context, l domain.Listing) error {
	checklist, err := encodeChecklist(l.Terms.Checklist)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE listings SET status = ?, monthly_rent = ?, security_deposit = ?, condo_fees = ?,
		 duration_years = ?, checklist_data = ?, ho_reviewer_id = ?, ho_comments = ?, submitted_at = ?,
		 reviewed_at = ?, approved_at = ?, published_at = ?, updated_at = ?, version = version + 1
		 WHERE id = ? AND version = ? AND deleted_at IS NULL`,
		string(l.Status), int64(l.Terms.MonthlyRent), int64(l.Terms.SecurityDeposit),
		nullCents(l.Terms.CondoFees), l.Terms.DurationYears, checklist,
		nullString(l.ReviewerID), nullString(l.Comments), nullTime(l.SubmittedAt),
		nullTime(l.ReviewedAt), nullTime(l.ApprovedAt), nullTime(l.PublishedAt),
		formatTime(l.UpdatedAt), l.ID, l.Version,
	)
	if err != nil {
		return fmt.Errorf("updating listing: %w", err)
	}
	return r.checkWritten(ctx, result, l.ID)
}

func (r *ListingRepository) SoftDelete(ctx context.Context, id string, version int64, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE listings SET deleted_at = ?, updated_at = ?, version = version + 1
		 WHERE id = ? AND version = ? AND deleted_at IS NULL`,
		formatTime(at), formatTime(at), id, version,
	)
	if err != nil {
		return fmt.Errorf("deleting listing: %w", err)
	}
	return r.checkWritten(ctx, result, id)
}

func (r *ListingRepository) CountByStatus(ctx context.Context, statuses ...domain.ListingStatus) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	args := make([]any, len(statuses))
	for i, s := range statuses {
		args[i] = string(s)
	}

	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM listings WHERE deleted_at IS NULL AND status IN (`+placeholders(len(args))+`)`,
		args...,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting listings: %w", err)
	}
	return n, nil
}

func (r *ListingRepository) checkWritten(ctx context.Context, result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM listings WHERE id = ? AND deleted_at IS NULL)`, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking listing existence: %w", err)
	}
	if !exists {
		return domain.ErrListingNotFound
	}
	return domain.ErrVersionConflict
}

func scanListing(row rowScanner) (domain.Listing, error) {
	var (
		l                                  domain.Listing
		status                             string
		rent, deposit                      int64
		condoFees                          sql.NullInt64
		checklist, reviewerID, comments    sql.NullString
		submitted, reviewed, approved, pub sql.NullString
		createdAt, updatedAt               string
		deletedAt                          sql.NullString
	)

	err := row.Scan(&l.ID, &l.PropertyID, &status, &rent, &deposit, &condoFees,
		&l.Terms.DurationYears, &checklist, &reviewerID, &comments, &submitted, &reviewed,
		&approved, &pub, &l.Version, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Listing{}, err
		}
		return domain.Listing{}, fmt.Errorf("scanning listing: %w", err)
	}

	if checklist.Valid {
		if err := json.Unmarshal([]byte(checklist.String), &l.Terms.Checklist); err != nil {
			return domain.Listing{}, fmt.Errorf("decoding checklist of listing %s: %w", l.ID, err)
		}
	}

	l.Status = domain.ListingStatus(status)
	l.Terms.MonthlyRent = domain.Cents(rent)
	l.Terms.SecurityDeposit = domain.Cents(deposit)
	if condoFees.Valid {
		c := domain.Cents(condoFees.Int64)
		l.Terms.CondoFees = &c
	}
	l.ReviewerID = reviewerID.String
	l.Comments = comments.String
	l.SubmittedAt = parseNullTime(submitted)
	l.ReviewedAt = parseNullTime(reviewed)
	l.ApprovedAt = parseNullTime(approved)
	l.PublishedAt = parseNullTime(pub)
	l.CreatedAt = parseTime(createdAt)
	l.UpdatedAt = parseTime(updatedAt)
	l.DeletedAt = parseNullTime(deletedAt)

	return l, nil
}

func encodeChecklist(c map[string]any) (sql.NullString, error) {
	if c == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encoding checklist: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func nullCents(c *domain.Cents) sql.NullInt64 {
	if c == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*c), Valid: true}
}
