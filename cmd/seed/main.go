package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"pet-lost-found/internal/adapters/auth/jwt"
	pg "pet-lost-found/internal/adapters/storage/postgres"
	"pet-lost-found/internal/config"
	"pet-lost-found/internal/domain/announcements"
	"pet-lost-found/internal/domain/comments"
	"pet-lost-found/internal/domain/geo"
	"pet-lost-found/internal/domain/users"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/seed"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		opts    seed.Options
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate Postgres with demo users, announcements and comments",
		Long: `seed creates demo data through the same services the API uses,
so every record passes the API validations. It requires a Postgres
database (DB_DSN or DB_HOST/DB_*); in-memory mode has nothing to seed.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, migrate)
		},
	}

	cmd.Flags().IntVar(&opts.Users, "users", 10, "Number of users")
	cmd.Flags().IntVar(&opts.Announcements, "announcements", 30, "Number of announcements")
	cmd.Flags().IntVar(&opts.CommentsPerAnnouncement, "comments", 2, "Comments per announcement")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "Random seed (0 = random)")
	cmd.Flags().StringVar(&opts.Password, "password", seed.DefaultPassword, "Password for every demo user")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Apply the schema before seeding")

	return cmd
}

func run(ctx context.Context, opts seed.Options, migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, App: "pet-lost-found-seed"})

	dsn := cfg.DatabaseDSN()
	if dsn == "" {
		return errors.New("no database configured: set DB_DSN or DB_HOST")
	}

	db, err := pg.Open(dsn)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()

	if migrate {
		if err := pg.Migrate(ctx, db); err != nil {
			return err
		}
	}

	table := geo.Default
	if cfg.GeoTableFile != "" {
		table = func() (*geo.Table, error) { return geo.Load(cfg.GeoTableFile) }
	}
	t, err := table()
	if err != nil {
		return err
	}

	usersSvc := users.NewService(pg.NewUsersRepo(db), jwt.New(cfg.JWTSecret, time.Hour))
	announcementsSvc := announcements.NewService(pg.NewAnnouncementsRepo(db), t)
	commentsSvc := comments.NewService(pg.NewCommentsRepo(db), announcementsSvc)

	res, err := seed.New(usersSvc, announcementsSvc, commentsSvc, t, log).Run(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("seeded %d users, %d announcements, %d comments (password %q)\n",
		res.Users, res.Announcements, res.Comments, opts.Password)
	return nil
}
