package contact

import (
	"context"
	"errors"

	"chatlink/internal/user"
	"chatlink/pkg/apperr"

	"github.com/google/uuid"
)

// Store is the persistence surface the relationship engine needs.
type Store interface {
	GetIDByHandle(ctx context.Context, handle string) (int, error)
	AddRequest(ctx context.Context, receiverID, requesterID int) (bool, error)
	Accept(ctx context.Context, accepterID, requesterID int) (uuid.UUID, error)
	ListPending(ctx context.Context, receiverID int) ([]user.Profile, error)
	ListFriends(ctx context.Context, userID int) ([]Friend, error)
}

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// SendRequest adds the sender to the receiver's pending set. The second
// return is true when the request was already pending — a distinct outcome,
// not an error.
func (s *Service) SendRequest(ctx context.Context, sender, receiver string) (bool, error) {
	if sender == receiver {
		return false, apperr.ErrInvalidParticipants
	}

	senderID, receiverID, err := s.resolvePair(ctx, sender, receiver)
	if err != nil {
		return false, err
	}

	inserted, err := s.repo.AddRequest(ctx, receiverID, senderID)
	if err != nil {
		return false, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}
	return !inserted, nil
}

// AcceptRequest establishes the symmetric friendship, clears the pending
// entry and guarantees exactly one private conversation for the pair.
func (s *Service) AcceptRequest(ctx context.Context, accepter, requester string) (uuid.UUID, error) {
	if accepter == requester {
		return uuid.Nil, apperr.ErrSelfAcceptance
	}

	accepterID, requesterID, err := s.resolvePair(ctx, accepter, requester)
	if err != nil {
		return uuid.Nil, err
	}

	convID, err := s.repo.Accept(ctx, accepterID, requesterID)
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}
	return convID, nil
}

func (s *Service) ListPending(ctx context.Context, handle string) ([]user.Profile, error) {
	id, err := s.repo.GetIDByHandle(ctx, handle)
	if err != nil {
		return nil, asDomain(err)
	}
	pending, err := s.repo.ListPending(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}
	return pending, nil
}

func (s *Service) ListFriends(ctx context.Context, handle string) ([]Friend, error) {
	id, err := s.repo.GetIDByHandle(ctx, handle)
	if err != nil {
		return nil, asDomain(err)
	}
	friends, err := s.repo.ListFriends(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}
	return friends, nil
}

func (s *Service) resolvePair(ctx context.Context, a, b string) (int, int, error) {
	aID, err := s.repo.GetIDByHandle(ctx, a)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			return 0, 0, apperr.ErrInvalidParticipants
		}
		return 0, 0, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}
	bID, err := s.repo.GetIDByHandle(ctx, b)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			return 0, 0, apperr.ErrInvalidParticipants
		}
		return 0, 0, apperr.Wrap(apperr.CodeInternal, "internal server error", err)
	}
	return aID, bID, nil
}

func asDomain(err error) error {
	if apperr.CodeOf(err) != apperr.CodeUnknown {
		return err
	}
	return apperr.Wrap(apperr.CodeInternal, "internal server error", err)
}
