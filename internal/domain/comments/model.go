package comments

import "time"

// Author es la proyección pública del autor (sin teléfono).
type Author struct {
	Name  string
	Email string
}

type Comment struct {
	ID             string
	AnnouncementID string
	AuthorUserID   string
	Content        string
	CreatedAt      time.Time

	// Solo lectura (join con users).
	Author *Author
}
