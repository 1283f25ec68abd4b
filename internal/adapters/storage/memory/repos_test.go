package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"pet-lost-found/internal/domain/announcements"
	"pet-lost-found/internal/domain/comments"
	"pet-lost-found/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ users.Repository         = (*UserRepo)(nil)
	_ announcements.Repository = (*AnnouncementRepo)(nil)
	_ comments.Repository      = (*CommentRepo)(nil)
)

func seedUser(t *testing.T, r *UserRepo, id, email string) {
	t.Helper()
	require.NoError(t, r.Create(context.Background(), users.User{ID: id, Name: "name-" + id, Email: email, Phone: "71"}))
}

func TestUserRepo_EmailUniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepo()
	seedUser(t, r, "u-1", "a@email.com")
	seedUser(t, r, "u-2", "b@email.com")

	err := r.Create(ctx, users.User{ID: "u-3", Email: "a@email.com"})
	assert.ErrorIs(t, err, users.ErrEmailTaken)

	u2, err := r.GetByID(ctx, "u-2")
	require.NoError(t, err)
	u2.Email = "a@email.com"
	assert.ErrorIs(t, r.Update(ctx, u2), users.ErrEmailTaken)

	_, err = r.GetByEmail(ctx, "A@email.com")
	assert.ErrorIs(t, err, users.ErrNotFound)

	assert.ErrorIs(t, r.Update(ctx, users.User{ID: "ghost"}), users.ErrNotFound)
}

func TestAnnouncementRepo_OwnerProjectionAndOrder(t *testing.T) {
	ctx := context.Background()
	ur := NewUserRepo()
	seedUser(t, ur, "u-1", "a@email.com")
	ar := NewAnnouncementRepo(ur)

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ar.Create(ctx, announcements.Announcement{ID: "old", OwnerUserID: "u-1", Status: announcements.StatusActive, CreatedAt: t0}))
	require.NoError(t, ar.Create(ctx, announcements.Announcement{ID: "new", OwnerUserID: "u-1", Status: announcements.StatusActive, CreatedAt: t0.Add(time.Hour)}))
	require.NoError(t, ar.Create(ctx, announcements.Announcement{ID: "orphan", OwnerUserID: "ghost", Status: announcements.StatusInactive, CreatedAt: t0}))

	items, err := ar.ListByStatus(ctx, announcements.StatusActive)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "old", items[1].ID)
	require.NotNil(t, items[0].Owner)
	assert.Equal(t, "name-u-1", items[0].Owner.Name)

	orphan, err := ar.GetByID(ctx, "orphan")
	require.NoError(t, err)
	assert.Nil(t, orphan.Owner)
}

func TestAnnouncementRepo_UpdateStatusIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	ar := NewAnnouncementRepo(NewUserRepo())
	require.NoError(t, ar.Create(ctx, announcements.Announcement{ID: "a-1", OwnerUserID: "u-1", Status: announcements.StatusActive}))

	at := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := ar.UpdateStatus(ctx, "a-1", "u-2", announcements.StatusFound, at)
	assert.ErrorIs(t, err, announcements.ErrNotFound)

	a, err := ar.UpdateStatus(ctx, "a-1", "u-1", announcements.StatusFound, at)
	require.NoError(t, err)
	assert.Equal(t, announcements.StatusFound, a.Status)
	require.NotNil(t, a.FoundDate)
	assert.Equal(t, at, *a.FoundDate)

	a, err = ar.UpdateStatus(ctx, "a-1", "u-1", announcements.StatusInactive, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, at, *a.FoundDate)
}

func TestAnnouncementRepo_ConcurrentStatusUpdates(t *testing.T) {
	ctx := context.Background()
	ar := NewAnnouncementRepo(NewUserRepo())
	require.NoError(t, ar.Create(ctx, announcements.Announcement{ID: "a-1", OwnerUserID: "u-1", Status: announcements.StatusActive}))

	statuses := []announcements.Status{announcements.StatusFound, announcements.StatusInactive, announcements.StatusActive}
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(st announcements.Status) {
			defer wg.Done()
			_, _ = ar.UpdateStatus(ctx, "a-1", "u-1", st, time.Now())
		}(statuses[i%len(statuses)])
	}
	wg.Wait()

	a, err := ar.GetByID(ctx, "a-1")
	require.NoError(t, err)
	assert.Contains(t, statuses, a.Status)
}

func TestCommentRepo_ForeignKeyAndOrder(t *testing.T) {
	ctx := context.Background()
	ur := NewUserRepo()
	seedUser(t, ur, "u-1", "a@email.com")
	ar := NewAnnouncementRepo(ur)
	require.NoError(t, ar.Create(ctx, announcements.Announcement{ID: "a-1", OwnerUserID: "u-1"}))
	cr := NewCommentRepo(ur, ar)

	err := cr.Create(ctx, comments.Comment{ID: "c-0", AnnouncementID: "missing", AuthorUserID: "u-1"})
	assert.ErrorIs(t, err, comments.ErrAnnouncementNotFound)

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, cr.Create(ctx, comments.Comment{ID: "c-2", AnnouncementID: "a-1", AuthorUserID: "u-1", CreatedAt: t0.Add(time.Minute)}))
	require.NoError(t, cr.Create(ctx, comments.Comment{ID: "c-1", AnnouncementID: "a-1", AuthorUserID: "u-1", CreatedAt: t0}))

	items, err := cr.ListByAnnouncement(ctx, "a-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c-1", items[0].ID)
	assert.Equal(t, "c-2", items[1].ID)
	require.NotNil(t, items[0].Author)
	assert.Equal(t, comments.Author{Name: "name-u-1", Email: "a@email.com"}, *items[0].Author)
}
