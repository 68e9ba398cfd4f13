// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/weblog-go/internal/model"
	"github.com/olegiv/weblog-go/internal/store"
)

// SeedDemo creates demo content for showcasing the weblog: a small set of
// authors, a category tree with translations, tagged articles in three
// languages, and an album. Writes run through the regular save pipeline.
// Idempotent: a second run is a no-op.
func (s *Service) SeedDemo(ctx context.Context) error {
	_, err := s.queries.GetUserByUsername(ctx, "picsou")
	if err == nil {
		slog.Info("demo content already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for demo content: %w", err)
	}

	slog.Info("seeding demo content")

	authors, err := s.seedDemoUsers(ctx)
	if err != nil {
		return fmt.Errorf("seeding demo users: %w", err)
	}

	categories, err := s.seedDemoCategories(ctx)
	if err != nil {
		return fmt.Errorf("seeding demo categories: %w", err)
	}

	if err := s.seedDemoArticles(ctx, authors, categories); err != nil {
		return fmt.Errorf("seeding demo articles: %w", err)
	}

	slog.Info("demo content seeded successfully")
	return nil
}

func (s *Service) seedDemoUsers(ctx context.Context) (map[string]int64, error) {
	users := []store.CreateUserParams{
		{Username: "picsou", FirstName: "Balthazar", LastName: "Picsou", IsStaff: true},
		{Username: "donald", FirstName: "Donald", LastName: "Duck"},
		{Username: "flairsou", FirstName: "Flairsou", LastName: "Crésus"},
	}

	ids := make(map[string]int64, len(users))
	for _, p := range users {
		u, err := s.queries.CreateUser(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("creating user %s: %w", p.Username, err)
		}
		ids[u.Username] = u.ID
	}
	return ids, nil
}

func (s *Service) seedDemoCategories(ctx context.Context) (map[string]int64, error) {
	type demoCategory struct {
		params   store.CreateCategoryParams
		original string // slug of the original, for translations
		parent   string // slug of the parent node
	}

	categories := []demoCategory{
		{params: store.CreateCategoryParams{
			Language: "en", Title: "Comics", Slug: "comics",
			Lead: "Stories from Duckburg and beyond.",
		}},
		{original: "comics", params: store.CreateCategoryParams{
			Language: "fr", Title: "Bandes dessinées", Slug: "bandes-dessinees",
		}},
		{parent: "comics", params: store.CreateCategoryParams{
			Language: "en", Title: "Adventures", Slug: "adventures",
		}},
		{params: store.CreateCategoryParams{
			Language: "en", Title: "Food", Slug: "food",
		}},
	}

	ids := make(map[string]int64, len(categories))
	for _, d := range categories {
		if d.original != "" {
			d.params.OriginalID = sql.NullInt64{Int64: ids[d.original], Valid: true}
		}
		if d.parent != "" {
			d.params.ParentID = sql.NullInt64{Int64: ids[d.parent], Valid: true}
		}

		c, errs, err := s.SaveCategory(ctx, CategoryWrite{CreateCategoryParams: d.params})
		if err != nil {
			return nil, fmt.Errorf("creating category %s: %w", d.params.Slug, err)
		}
		if len(errs) > 0 {
			return nil, fmt.Errorf("creating category %s: %w", d.params.Slug, errs)
		}
		ids[c.Slug] = c.ID
	}
	return ids, nil
}

func (s *Service) seedDemoArticles(ctx context.Context, authors, categories map[string]int64) error {
	now := time.Now().UTC()
	lastWeek := now.AddDate(0, 0, -7)
	tomorrow := now.AddDate(0, 0, 1)

	adventure, err := s.queries.GetOrCreateTag(ctx, "Adventure", "adventure")
	if err != nil {
		return err
	}
	ducks, err := s.queries.GetOrCreateTag(ctx, "Ducks", "ducks")
	if err != nil {
		return err
	}

	album, err := s.queries.CreateAlbum(ctx, "Cheese board")
	if err != nil {
		return err
	}
	for i, title := range []string{"Brie", "Roquefort", "Emmental"} {
		_, err := s.queries.CreateAlbumItem(ctx, store.CreateAlbumItemParams{
			AlbumID: album.ID,
			Title:   title,
			Order:   i + 1,
		})
		if err != nil {
			return err
		}
	}

	type demoArticle struct {
		write      ArticleWrite
		authors    []string
		categories []string
		related    []string
		name       string // key for original references
		original   string
	}

	articles := []demoArticle{
		{
			name: "klondike",
			write: ArticleWrite{CreateArticleParams: store.CreateArticleParams{
				Language: "en", Status: model.StatusAvailable,
				PublishDate: lastWeek, PublishTime: seedTime(9, 0),
				Title: "Gold in the Klondike", Slug: "klondike",
				Lead: "How a single dime started it all.",
			}, TagIDs: []int64{adventure.ID}},
			authors:    []string{"picsou"},
			categories: []string{"adventures"},
		},
		{
			name: "duckcity",
			write: ArticleWrite{CreateArticleParams: store.CreateArticleParams{
				Language: "en", Status: model.StatusAvailable,
				PublishDate: lastWeek.AddDate(0, 0, 1), PublishTime: seedTime(10, 30),
				Title: "A Walk Through Duckburg", Slug: "duckcity",
			}, TagIDs: []int64{ducks.ID}},
			authors:    []string{"picsou", "donald"},
			categories: []string{"comics"},
		},
		{
			name: "tomorrow",
			write: ArticleWrite{CreateArticleParams: store.CreateArticleParams{
				Language: "en", Status: model.StatusAvailable,
				PublishDate: tomorrow, PublishTime: seedTime(8, 0),
				Title: "Tomorrow's News Today", Slug: "tomorrow",
			}},
			authors: []string{"donald"},
		},
		{
			name: "camembert",
			write: ArticleWrite{CreateArticleParams: store.CreateArticleParams{
				Language: "fr", Status: model.StatusAvailable,
				PublishDate: lastWeek, PublishTime: seedTime(12, 0),
				Title: "Éloge du camembert", Slug: "camembert",
			}},
			authors:    []string{"flairsou"},
			categories: []string{"bandes-dessinees"},
		},
		{
			name: "cheese",
			write: ArticleWrite{CreateArticleParams: store.CreateArticleParams{
				Language: "en", Status: model.StatusAvailable,
				PublishDate: lastWeek.AddDate(0, 0, 2), PublishTime: seedTime(14, 0),
				Title: "On Cheese", Slug: "cheese",
				Featured: true,
				AlbumID:  sql.NullInt64{Int64: album.ID, Valid: true},
			}},
			authors:    []string{"flairsou"},
			categories: []string{"food"},
			related:    []string{"duckcity"},
		},
		{
			name: "fromage", original: "cheese",
			write: ArticleWrite{CreateArticleParams: store.CreateArticleParams{
				Language: "fr", Status: model.StatusAvailable,
				PublishDate: lastWeek.AddDate(0, 0, 2), PublishTime: seedTime(14, 0),
				Title: "Du fromage", Slug: "fromage",
			}},
			authors: []string{"flairsou"},
		},
		{
			name: "kaese", original: "cheese",
			write: ArticleWrite{CreateArticleParams: store.CreateArticleParams{
				Language: "de", Status: model.StatusAvailable,
				PublishDate: lastWeek.AddDate(0, 0, 2), PublishTime: seedTime(14, 0),
				Title: "Über Käse", Slug: "kaese",
			}},
			authors: []string{"flairsou"},
		},
	}

	created := make(map[string]int64, len(articles))
	for _, d := range articles {
		if d.original != "" {
			d.write.OriginalID = sql.NullInt64{Int64: created[d.original], Valid: true}
		}
		for _, username := range d.authors {
			d.write.AuthorIDs = append(d.write.AuthorIDs, authors[username])
		}
		for _, slug := range d.categories {
			d.write.CategoryIDs = append(d.write.CategoryIDs, categories[slug])
		}
		for _, name := range d.related {
			d.write.RelatedIDs = append(d.write.RelatedIDs, created[name])
		}

		a, errs, err := s.SaveArticle(ctx, d.write)
		if err != nil {
			return fmt.Errorf("creating article %s: %w", d.write.Slug, err)
		}
		if len(errs) > 0 {
			return fmt.Errorf("creating article %s: %w", d.write.Slug, errs)
		}
		created[d.name] = a.ID
	}

	return nil
}

func seedTime(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}
