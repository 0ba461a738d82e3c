package reviews

import (
	"context"
	"time"

	"github.com/juegoteca/backend/internal/games"
)

// GameResolver looks up several games at once, keyed by hex id. Satisfied by
// the games service.
type GameResolver interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*games.Game, error)
}

// Service encapsulates review business logic. It also implements the games
// package's ReviewPurger for the cascading delete.
type Service struct {
	repo     Repository
	resolver GameResolver
}

func NewService(repo Repository, resolver GameResolver) *Service {
	return &Service{repo: repo, resolver: resolver}
}

// ListResolved returns every review, newest first, with the game reference
// replaced by the full game record. Orphaned references resolve to null.
func (s *Service) ListResolved(ctx context.Context) ([]*Resolved, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	seen := map[string]bool{}
	for _, rv := range list {
		if !seen[rv.GameID] {
			seen[rv.GameID] = true
			ids = append(ids, rv.GameID)
		}
	}
	byID, err := s.resolver.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*Resolved, 0, len(list))
	for _, rv := range list {
		out = append(out, &Resolved{
			ID:      rv.ID,
			Game:    byID[rv.GameID],
			Title:   rv.Title,
			Content: rv.Content,
			Rating:  rv.Rating,
			Date:    rv.Date,
		})
	}
	return out, nil
}

func (s *Service) ListByGame(ctx context.Context, gameID string) ([]*Review, error) {
	return s.repo.ListByGame(ctx, gameID)
}

// Create persists a review with date defaulting to now. The gameId reference
// is deliberately not checked for existence.
func (s *Service) Create(ctx context.Context, in *CreateInput) (*Review, error) {
	rv := &Review{
		GameID:  in.GameID,
		Title:   in.Title,
		Content: in.Content,
		Rating:  in.Rating,
		Date:    time.Now().UTC(),
	}
	return s.repo.Create(ctx, rv)
}

func (s *Service) Update(ctx context.Context, id string, in *UpdateInput) (*Review, error) {
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// DeleteByGame removes every review referencing the given game and reports
// how many were deleted.
func (s *Service) DeleteByGame(ctx context.Context, gameID string) (int64, error) {
	return s.repo.DeleteByGame(ctx, gameID)
}
