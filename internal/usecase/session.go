package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"

	"github.com/yomogi/ghostboard/internal/domain"
)

var ghostAdjectives = []string{"Ghost", "Phantom", "Shadow", "Spirit", "Specter", "Wraith"}

// IssuedSession is a fresh anonymous identity plus its bearer token.
type IssuedSession struct {
	domain.Session
	Token string `json:"token,omitempty"`
}

// SessionUsecase issues opaque anonymous identities for boards running
// without an external auth provider.
type SessionUsecase struct {
	sessions SessionStore
	tokens   TokenIssuer
	ttl      time.Duration
}

func NewSessionUsecase(sessions SessionStore, tokens TokenIssuer, ttl time.Duration) *SessionUsecase {
	return &SessionUsecase{
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
	}
}

// Issue creates a new anonymous user id with a derived ghost name, stores
// the session and mints a bearer token for it.
func (uc *SessionUsecase) Issue(ctx context.Context) (IssuedSession, error) {
	ctx, span := tracer.Start(ctx, "Session.Usecase.Issue")
	defer span.End()

	userID := "user-" + uuid.NewString()
	session := domain.Session{
		UserID:    userID,
		GhostName: GhostName(userID),
	}

	if err := uc.sessions.Put(ctx, session, uc.ttl); err != nil {
		span.RecordError(err)
		return IssuedSession{}, domain.StoreError{Err: err}
	}

	issued := IssuedSession{Session: session}

	if uc.tokens != nil {
		token, err := uc.tokens.IssueToken(session.UserID, uc.ttl)
		if err != nil {
			span.RecordError(err)
			return IssuedSession{}, errors.Wrap(err, "failed to issue session token")
		}
		issued.Token = token
	}

	return issued, nil
}

// Resolve looks up a session by user id.
func (uc *SessionUsecase) Resolve(ctx context.Context, userID string) (domain.Session, error) {
	return uc.sessions.Get(ctx, userID)
}

// GhostName derives a stable display name from a user id.
func GhostName(userID string) string {
	h := xxh3.HashString(userID)
	adjective := ghostAdjectives[h%uint64(len(ghostAdjectives))]
	number := 100 + (h/uint64(len(ghostAdjectives)))%900
	return fmt.Sprintf("%s%d", adjective, number)
}
