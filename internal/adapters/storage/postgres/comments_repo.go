package postgres

import (
	"context"
	"database/sql"

	"pet-lost-found/internal/domain/comments"
)

type CommentsRepo struct {
	db *sql.DB
}

func NewCommentsRepo(db *sql.DB) *CommentsRepo {
	return &CommentsRepo{db: db}
}

func (r *CommentsRepo) Create(ctx context.Context, c comments.Comment) error {
	if !validID(c.AnnouncementID) {
		return comments.ErrAnnouncementNotFound
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, announcement_id, user_id, content, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		c.ID,
		c.AnnouncementID,
		c.AuthorUserID,
		c.Content,
		c.CreatedAt,
	)
	if constraintViolation(err, codeForeignKeyViolation, "comments_announcement_fk") {
		return comments.ErrAnnouncementNotFound
	}
	return err
}

func (r *CommentsRepo) ListByAnnouncement(ctx context.Context, announcementID string) ([]comments.Comment, error) {
	if !validID(announcementID) {
		return []comments.Comment{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id, c.announcement_id, c.user_id, c.content, c.created_at,
			u.name, u.email
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.announcement_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`, announcementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]comments.Comment, 0)
	for rows.Next() {
		var (
			c           comments.Comment
			name, email sql.NullString
		)
		if err := rows.Scan(
			&c.ID,
			&c.AnnouncementID,
			&c.AuthorUserID,
			&c.Content,
			&c.CreatedAt,
			&name,
			&email,
		); err != nil {
			return nil, err
		}
		if name.Valid {
			c.Author = &comments.Author{Name: name.String, Email: email.String}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
