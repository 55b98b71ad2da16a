package news

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/store"
)

// Typed subscription failures, surfaced to the form as field-level errors.
var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrSubscribeFailed = errors.New("subscription failed")
)

// IncrementViewCount applies one atomic server-side add-1 to the article's
// view counter. Fire-and-forget: failures (including a missing counter
// column) are swallowed so a hiccup never breaks page rendering. Callers are
// responsible for invoking it at most once per view.
func (s *Service) IncrementViewCount(ctx context.Context, articleID string) {
	if err := s.backend.IncrementViewCount(ctx, articleID); err != nil {
		log.Printf("news: view count increment for %s dropped: %v", articleID, err)
	}
}

// VoteForModel applies one atomic add-1 to the model's vote counter.
// Errors are swallowed; at-most-once-per-client is the caller's job via
// clientstate.VoteGuard.
func (s *Service) VoteForModel(ctx context.Context, modelID int) {
	if err := s.backend.IncrementModelVote(ctx, modelID); err != nil {
		log.Printf("news: vote for model %d dropped: %v", modelID, err)
	}
}

// SubscribeEmail validates the address locally, then inserts the
// subscription. Returns ErrInvalidEmail for malformed addresses (no store
// call is made), ErrSubscribeFailed for everything else, nil on success.
func (s *Service) SubscribeEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	if err := s.backend.SubscribeEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrInvalidEmail) {
			return ErrInvalidEmail
		}
		log.Printf("news: subscription failed: %v", err)
		return ErrSubscribeFailed
	}
	return nil
}
