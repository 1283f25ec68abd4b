// Package seed carga datos de demo a través de los services (mismas
// validaciones que la API).
package seed

import (
	"context"
	"fmt"

	"pet-lost-found/internal/domain/announcements"
	"pet-lost-found/internal/domain/comments"
	"pet-lost-found/internal/domain/geo"
	"pet-lost-found/internal/domain/users"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog"
)

const DefaultPassword = "123456"

type Options struct {
	Users                   int
	Announcements           int
	CommentsPerAnnouncement int

	// Misma semilla => mismos datos.
	Seed     int64
	Password string
}

type Result struct {
	Users         int
	Announcements int
	Comments      int

	// Emails de las cuentas creadas (todas con Options.Password).
	Emails []string
}

type Seeder struct {
	users         *users.Service
	announcements *announcements.Service
	comments      *comments.Service
	table         *geo.Table
	log           zerolog.Logger
}

func New(u *users.Service, a *announcements.Service, c *comments.Service, table *geo.Table, log zerolog.Logger) *Seeder {
	return &Seeder{users: u, announcements: a, comments: c, table: table, log: log}
}

func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Users < 1 {
		return Result{}, fmt.Errorf("seed: at least one user is required")
	}
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}

	f := gofakeit.New(opts.Seed)
	var res Result

	people := make([]users.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u, err := s.users.Register(ctx, users.RegisterInput{
			Name: f.Name(),
			// prefijo para que la semilla no choque con emails repetidos
			Email:    fmt.Sprintf("demo%d.%s", i+1, f.Email()),
			Password: opts.Password,
			Phone:    f.Phone(),
		})
		if err != nil {
			return res, fmt.Errorf("seed user %d: %w", i+1, err)
		}
		people = append(people, u)
		res.Users++
		res.Emails = append(res.Emails, u.Email)
	}

	names := s.table.Names()
	for i := 0; i < opts.Announcements; i++ {
		owner := people[f.Number(0, len(people)-1)]
		typ := f.RandomString([]string{string(announcements.TypeLost), string(announcements.TypeFound)})

		a, err := s.announcements.Create(ctx, owner.ID, announcements.CreateInput{
			PetName:      f.PetName(),
			Description:  f.Sentence(12),
			Type:         typ,
			Neighborhood: names[f.Number(0, len(names)-1)],
		})
		if err != nil {
			return res, fmt.Errorf("seed announcement %d: %w", i+1, err)
		}
		res.Announcements++

		for j := 0; j < opts.CommentsPerAnnouncement; j++ {
			author := people[f.Number(0, len(people)-1)]
			if _, err := s.comments.Create(ctx, a.ID, author.ID, f.Sentence(8)); err != nil {
				return res, fmt.Errorf("seed comment on %s: %w", a.ID, err)
			}
			res.Comments++
		}

		// ~1 de cada 4 se resuelve, ~1 de cada 10 se da de baja
		switch n := f.Number(1, 20); {
		case n <= 5:
			_, err = s.announcements.UpdateStatus(ctx, a.ID, string(announcements.StatusFound), owner.ID)
		case n <= 7:
			_, err = s.announcements.UpdateStatus(ctx, a.ID, string(announcements.StatusInactive), owner.ID)
		}
		if err != nil {
			return res, fmt.Errorf("seed status on %s: %w", a.ID, err)
		}
	}

	s.log.Info().
		Int("users", res.Users).
		Int("announcements", res.Announcements).
		Int("comments", res.Comments).
		Msg("seed complete")
	return res, nil
}
