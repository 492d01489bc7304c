package group

import (
	"context"

	"chatlink/internal/chat"
	"chatlink/pkg/apperr"

	"github.com/google/uuid"
)

// Store is the persistence surface the group service needs.
type Store interface {
	GetIDByHandle(ctx context.Context, handle string) (int, error)
	Create(ctx context.Context, name string, adminID int) (*Group, error)
	GetByName(ctx context.Context, name string) (*Group, error)
	ListByMember(ctx context.Context, userID int) ([]Group, error)
	Rename(ctx context.Context, name, newName string) (*Group, error)
	Delete(ctx context.Context, name string) error
	Search(ctx context.Context, query string) ([]Profile, error)
	AddMember(ctx context.Context, convID uuid.UUID, userID int) error
	RemoveMember(ctx context.Context, convID uuid.UUID, userID int) error
	IsMember(ctx context.Context, convID uuid.UUID, userID int) (bool, error)
	InsertMessage(ctx context.Context, convID uuid.UUID, sender, groupName, body string) (*chat.Message, error)
	Messages(ctx context.Context, convID uuid.UUID) ([]chat.Message, error)
}

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name, admin string) (*Group, error) {
	adminID, err := s.repo.GetIDByHandle(ctx, admin)
	if err != nil {
		return nil, asDomain(err)
	}
	g, err := s.repo.Create(ctx, name, adminID)
	if err != nil {
		return nil, asDomain(err)
	}
	return g, nil
}

func (s *Service) ListByMember(ctx context.Context, handle string) ([]Group, error) {
	id, err := s.repo.GetIDByHandle(ctx, handle)
	if err != nil {
		return nil, asDomain(err)
	}
	groups, err := s.repo.ListByMember(ctx, id)
	if err != nil {
		return nil, asDomain(err)
	}
	return groups, nil
}

func (s *Service) Rename(ctx context.Context, name, newName string) (*Group, error) {
	g, err := s.repo.Rename(ctx, name, newName)
	if err != nil {
		return nil, asDomain(err)
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, name string) error {
	return asNilOrDomain(s.repo.Delete(ctx, name))
}

func (s *Service) Search(ctx context.Context, query string) ([]Profile, error) {
	if query == "" {
		return nil, apperr.ErrInvalidQuery
	}
	groups, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, asDomain(err)
	}
	return groups, nil
}

func (s *Service) Join(ctx context.Context, name, handle string) error {
	g, id, err := s.resolve(ctx, name, handle)
	if err != nil {
		return err
	}
	return asNilOrDomain(s.repo.AddMember(ctx, g.ConversationID, id))
}

func (s *Service) Leave(ctx context.Context, name, handle string) error {
	g, id, err := s.resolve(ctx, name, handle)
	if err != nil {
		return err
	}
	return asNilOrDomain(s.repo.RemoveMember(ctx, g.ConversationID, id))
}

// SendMessage appends to the group conversation. Only members may post.
func (s *Service) SendMessage(ctx context.Context, name, sender, content string) (*chat.Message, error) {
	g, senderID, err := s.resolve(ctx, name, sender)
	if err != nil {
		return nil, err
	}

	member, err := s.repo.IsMember(ctx, g.ConversationID, senderID)
	if err != nil {
		return nil, asDomain(err)
	}
	if !member {
		return nil, apperr.ErrNotGroupMember
	}

	msg, err := s.repo.InsertMessage(ctx, g.ConversationID, sender, name, content)
	if err != nil {
		return nil, asDomain(err)
	}
	return msg, nil
}

// History returns the group log, restricted to members.
func (s *Service) History(ctx context.Context, name, requester string) ([]chat.Message, error) {
	g, requesterID, err := s.resolve(ctx, name, requester)
	if err != nil {
		return nil, err
	}

	member, err := s.repo.IsMember(ctx, g.ConversationID, requesterID)
	if err != nil {
		return nil, asDomain(err)
	}
	if !member {
		return nil, apperr.ErrNotGroupMember
	}

	msgs, err := s.repo.Messages(ctx, g.ConversationID)
	if err != nil {
		return nil, asDomain(err)
	}
	return msgs, nil
}

func (s *Service) resolve(ctx context.Context, name, handle string) (*Group, int, error) {
	g, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, 0, asDomain(err)
	}
	id, err := s.repo.GetIDByHandle(ctx, handle)
	if err != nil {
		return nil, 0, asDomain(err)
	}
	return g, id, nil
}

func asDomain(err error) error {
	if apperr.CodeOf(err) != apperr.CodeUnknown {
		return err
	}
	return apperr.Wrap(apperr.CodeInternal, "internal server error", err)
}

func asNilOrDomain(err error) error {
	if err == nil {
		return nil
	}
	return asDomain(err)
}
