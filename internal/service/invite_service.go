package service

import (
	"context"
	"log"
	"time"

	"familywallet/internal/credentials"
	"familywallet/internal/database"
	"familywallet/internal/models"
	"familywallet/internal/repository"
)

// InviteService creates and lists family invite codes, optionally delivering
// them by email.
type InviteService struct {
	db      *database.DB
	invites *repository.InviteRepository
	email   *EmailService
}

// NewInviteService creates a new invite service
func NewInviteService(db *database.DB, invites *repository.InviteRepository, email *EmailService) *InviteService {
	return &InviteService{db: db, invites: invites, email: email}
}

// ListInvites returns all invites, newest first
func (s *InviteService) ListInvites() ([]models.Invite, error) {
	return s.invites.List(s.db)
}

// CreateInvite generates a fresh invite code and, when an email address is
// given and sending is configured, mails it. A delivery failure does not
// discard the created invite.
func (s *InviteService) CreateInvite(ctx context.Context, email string) (models.Invite, error) {
	code, err := credentials.GenerateInviteCode()
	if err != nil {
		return models.Invite{}, err
	}

	invite := models.Invite{
		Code:      code,
		Email:     email,
		CreatedAt: time.Now(),
	}
	if err := s.invites.Create(s.db, invite); err != nil {
		return models.Invite{}, err
	}

	if email != "" {
		if err := s.email.SendInvite(ctx, email, code); err != nil {
			log.Printf("invite %s created but email delivery failed: %v", code, err)
		}
	}
	return invite, nil
}
