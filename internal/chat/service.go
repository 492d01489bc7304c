package chat

import (
	"context"
	"errors"

	"chatlink/pkg/apperr"

	"github.com/google/uuid"
)

// Store is the persistence surface the conversation store needs.
type Store interface {
	GetIDByHandle(ctx context.Context, handle string) (int, error)
	FindOrCreatePrivate(ctx context.Context, aID, bID int) (uuid.UUID, error)
	FindPrivateByPair(ctx context.Context, aID, bID int) (uuid.UUID, bool, error)
	InsertMessage(ctx context.Context, convID uuid.UUID, sender, recipient, body string, isGroup bool) (*Message, error)
	MessagesByConversation(ctx context.Context, convID uuid.UUID) ([]Message, error)
}

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// FindOrCreatePrivate guarantees exactly one conversation for the unordered
// pair of handles.
func (s *Service) FindOrCreatePrivate(ctx context.Context, a, b string) (uuid.UUID, error) {
	aID, bID, err := s.resolvePair(ctx, a, b)
	if err != nil {
		return uuid.Nil, err
	}
	convID, err := s.repo.FindOrCreatePrivate(ctx, aID, bID)
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}
	return convID, nil
}

// AppendMessage persists a private message. A thread must already exist
// between the pair — messaging a non-friend is refused and nothing is
// written.
func (s *Service) AppendMessage(ctx context.Context, sender, recipient, body string) (*Message, error) {
	senderID, recipientID, err := s.resolvePair(ctx, sender, recipient)
	if err != nil {
		return nil, err
	}

	convID, found, err := s.repo.FindPrivateByPair(ctx, senderID, recipientID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}
	if !found {
		return nil, apperr.ErrNoPrivateThread
	}

	msg, err := s.repo.InsertMessage(ctx, convID, sender, recipient, body, false)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}
	return msg, nil
}

// History returns the pair's message log in ascending creation order.
func (s *Service) History(ctx context.Context, a, b string) ([]Message, error) {
	aID, bID, err := s.resolvePair(ctx, a, b)
	if err != nil {
		return nil, err
	}

	convID, found, err := s.repo.FindPrivateByPair(ctx, aID, bID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}
	if !found {
		return nil, apperr.ErrNoConversation
	}

	msgs, err := s.repo.MessagesByConversation(ctx, convID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}
	return msgs, nil
}

func (s *Service) resolvePair(ctx context.Context, a, b string) (int, int, error) {
	aID, err := s.repo.GetIDByHandle(ctx, a)
	if err != nil {
		return 0, 0, userLookupErr(err)
	}
	bID, err := s.repo.GetIDByHandle(ctx, b)
	if err != nil {
		return 0, 0, userLookupErr(err)
	}
	return aID, bID, nil
}

func userLookupErr(err error) error {
	if errors.Is(err, apperr.ErrUserNotFound) {
		return err
	}
	return apperr.Wrap(apperr.CodeInternal, "internal server error", err)
}
