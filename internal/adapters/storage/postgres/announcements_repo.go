package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-lost-found/internal/domain/announcements"
)

// Columnas con alias "a" (announcements) y "u" (users, LEFT JOIN para la
// proyección del dueño).
const announcementColumns = `
	a.id, a.user_id,
	a.pet_name, a.description, a.type,
	a.image_data, a.image_mime_type,
	a.neighborhood, a.latitude, a.longitude,
	a.status, a.found_date,
	a.created_at, a.updated_at,
	u.name, u.phone, u.email`

type AnnouncementsRepo struct {
	db *sql.DB
}

func NewAnnouncementsRepo(db *sql.DB) *AnnouncementsRepo {
	return &AnnouncementsRepo{db: db}
}

func (r *AnnouncementsRepo) Create(ctx context.Context, a announcements.Announcement) error {
	var (
		data []byte
		mime sql.NullString
	)
	if a.Image != nil {
		data = a.Image.Data
		mime = sql.NullString{String: a.Image.MimeType, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO announcements (
			id, user_id,
			pet_name, description, type,
			image_data, image_mime_type,
			neighborhood, latitude, longitude,
			status, found_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		a.ID,
		a.OwnerUserID,
		a.PetName,
		a.Description,
		string(a.Type),
		data,
		mime,
		a.Neighborhood,
		toNullFloat(a.Latitude),
		toNullFloat(a.Longitude),
		string(a.Status),
		toNullTime(a.FoundDate),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnnouncementsRepo) GetByID(ctx context.Context, id string) (announcements.Announcement, error) {
	if !validID(id) {
		return announcements.Announcement{}, announcements.ErrNotFound
	}
	return scanAnnouncement(r.db.QueryRowContext(ctx, `
		SELECT `+announcementColumns+`
		FROM announcements a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`, id))
}

func (r *AnnouncementsRepo) ListByStatus(ctx context.Context, status announcements.Status) ([]announcements.Announcement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+announcementColumns+`
		FROM announcements a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.status = $1
		ORDER BY a.created_at DESC, a.id DESC
	`, string(status))
	if err != nil {
		return nil, err
	}
	return collectAnnouncements(rows)
}

func (r *AnnouncementsRepo) ListByOwner(ctx context.Context, ownerUserID string, status *announcements.Status) ([]announcements.Announcement, error) {
	if !validID(ownerUserID) {
		return []announcements.Announcement{}, nil
	}

	// $2 NULL = sin filtro de status
	var filter sql.NullString
	if status != nil {
		filter = sql.NullString{String: string(*status), Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+announcementColumns+`
		FROM announcements a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		  AND ($2::text IS NULL OR a.status = $2::text)
		ORDER BY a.created_at DESC, a.id DESC
	`, ownerUserID, filter)
	if err != nil {
		return nil, err
	}
	return collectAnnouncements(rows)
}

// UpdateStatus: un único UPDATE condicional por id + dueño. Cero filas =>
// ErrNotFound (no existe o no es del caller). found_date solo se toca al pasar
// a found y nunca se limpia.
func (r *AnnouncementsRepo) UpdateStatus(ctx context.Context, id, ownerUserID string, status announcements.Status, at time.Time) (announcements.Announcement, error) {
	if !validID(id) || !validID(ownerUserID) {
		return announcements.Announcement{}, announcements.ErrNotFound
	}

	return scanAnnouncement(r.db.QueryRowContext(ctx, `
		WITH a AS (
			UPDATE announcements
			SET
				status = $3::text,
				updated_at = $4::timestamptz,
				found_date = CASE WHEN $3::text = 'found' THEN $4::timestamptz ELSE found_date END
			WHERE id = $1 AND user_id = $2
			RETURNING *
		)
		SELECT `+announcementColumns+`
		FROM a
		LEFT JOIN users u ON u.id = a.user_id
	`, id, ownerUserID, string(status), at))
}

func collectAnnouncements(rows *sql.Rows) ([]announcements.Announcement, error) {
	defer rows.Close()

	out := make([]announcements.Announcement, 0)
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAnnouncement(row rowScanner) (announcements.Announcement, error) {
	var (
		a          announcements.Announcement
		typ        string
		status     string
		imageData  []byte
		imageMime  sql.NullString
		lat, lng   sql.NullFloat64
		foundDate  sql.NullTime
		ownerName  sql.NullString
		ownerPhone sql.NullString
		ownerEmail sql.NullString
	)
	if err := row.Scan(
		&a.ID,
		&a.OwnerUserID,
		&a.PetName,
		&a.Description,
		&typ,
		&imageData,
		&imageMime,
		&a.Neighborhood,
		&lat,
		&lng,
		&status,
		&foundDate,
		&a.CreatedAt,
		&a.UpdatedAt,
		&ownerName,
		&ownerPhone,
		&ownerEmail,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return announcements.Announcement{}, announcements.ErrNotFound
		}
		return announcements.Announcement{}, err
	}

	a.Type = announcements.Type(typ)
	a.Status = announcements.Status(status)
	if len(imageData) > 0 && imageMime.Valid {
		a.Image = &announcements.Image{Data: imageData, MimeType: imageMime.String}
	}
	if lat.Valid && lng.Valid {
		la, ln := lat.Float64, lng.Float64
		a.Latitude, a.Longitude = &la, &ln
	}
	if foundDate.Valid {
		t := foundDate.Time
		a.FoundDate = &t
	}
	if ownerName.Valid {
		a.Owner = &announcements.Owner{Name: ownerName.String, Phone: ownerPhone.String, Email: ownerEmail.String}
	}
	return a, nil
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
