package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"extend-xmlrpc/config"
	"extend-xmlrpc/db"
	"extend-xmlrpc/internal/logger"
	"extend-xmlrpc/models"
	"extend-xmlrpc/repositories"
	"extend-xmlrpc/services"
)

// Fixture is the yaml layout accepted by `seed`.
type Fixture struct {
	Users []FixtureUser `yaml:"users"`
	Terms []models.Term `yaml:"terms"`
	Posts []models.Post `yaml:"posts"`
}

// FixtureUser may carry a plaintext password that is hashed on load.
type FixtureUser struct {
	models.User `yaml:",inline"`
	Password    string `yaml:"password"`
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert users, terms and posts from a yaml fixture into MongoDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			fx, err := parseFixture(data)
			if err != nil {
				return err
			}

			config.InitApp()
			ctx := cmd.Context()
			if err := db.Init(ctx); err != nil {
				return fmt.Errorf("connect mongo: %w", err)
			}
			defer db.Close(context.Background())

			n, err := seed(ctx, fx,
				repositories.NewUserRepository(db.Database()),
				repositories.NewTermRepository(db.Database()),
				repositories.NewPostRepository(db.Database()),
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d terms, %d posts\n", n.users, n.terms, n.posts)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Fixture yaml file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func parseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i := range fx.Users {
		u := &fx.Users[i]
		if u.Password == "" {
			continue
		}
		hash, err := services.HashPassword(u.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password of %s: %w", u.Login, err)
		}
		u.PasswordHash = hash
	}
	return &fx, nil
}

type seedCounts struct {
	users, terms, posts int
}

func seed(ctx context.Context, fx *Fixture, users *repositories.UserRepository, terms *repositories.TermRepository, posts *repositories.PostRepository) (seedCounts, error) {
	var n seedCounts
	for i := range fx.Users {
		if _, err := users.Upsert(ctx, &fx.Users[i].User); err != nil {
			return n, fmt.Errorf("upsert user %s: %w", fx.Users[i].Login, err)
		}
		n.users++
	}
	for i := range fx.Terms {
		if _, err := terms.Upsert(ctx, &fx.Terms[i]); err != nil {
			return n, fmt.Errorf("upsert term %s: %w", fx.Terms[i].Slug, err)
		}
		n.terms++
	}
	for i := range fx.Posts {
		if _, err := posts.Upsert(ctx, &fx.Posts[i]); err != nil {
			return n, fmt.Errorf("upsert post %d: %w", fx.Posts[i].ID, err)
		}
		n.posts++
	}
	logger.InfoWithFields("fixture seeded", logger.Fields{"users": n.users, "terms": n.terms, "posts": n.posts})
	return n, nil
}
