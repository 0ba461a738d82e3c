package games

import (
	"context"
	"time"
)

// Service encapsulates game business logic on top of a Repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Game, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Game, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByIDs(ctx context.Context, ids []string) (map[string]*Game, error) {
	return s.repo.GetByIDs(ctx, ids)
}

// Create applies server-side defaults (completed=false, rating=0,
// hoursPlayed=0, dateAdded=now) and persists the record.
func (s *Service) Create(ctx context.Context, in *CreateInput) (*Game, error) {
	g := &Game{
		Title:     in.Title,
		Platform:  in.Platform,
		Genre:     in.Genre,
		CoverURL:  in.CoverURL,
		DateAdded: time.Now().UTC(),
	}
	if in.Completed != nil {
		g.Completed = *in.Completed
	}
	if in.Rating != nil {
		g.Rating = *in.Rating
	}
	if in.HoursPlayed != nil {
		g.HoursPlayed = *in.HoursPlayed
	}
	return s.repo.Create(ctx, g)
}

func (s *Service) Update(ctx context.Context, id string, in *UpdateInput) (*Game, error) {
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SetCoverURL records the location of an uploaded cover image.
func (s *Service) SetCoverURL(ctx context.Context, id, url string) (*Game, error) {
	return s.repo.Update(ctx, id, &UpdateInput{CoverURL: &url})
}
