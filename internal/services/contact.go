package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/repos"
	"github.com/federaltalks/iq-backend/internal/types"
)

var validContactTypes = map[string]struct{}{
	"cio":         {},
	"cto":         {},
	"cpo":         {},
	"procurement": {},
	"director":    {},
}

type ContactService interface {
	List(ctx context.Context) ([]types.Contact, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Contact, error)
	Create(ctx context.Context, contact *types.Contact) (*types.Contact, error)
	Update(ctx context.Context, id uuid.UUID, patch *types.Contact) (*types.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactService struct {
	db          *gorm.DB
	log         *logger.Logger
	contactRepo repos.ContactRepo
}

func NewContactService(db *gorm.DB, log *logger.Logger, contactRepo repos.ContactRepo) ContactService {
	serviceLog := log.With("service", "ContactService")
	return &contactService{db: db, log: serviceLog, contactRepo: contactRepo}
}

func (cs *contactService) List(ctx context.Context) ([]types.Contact, error) {
	return cs.contactRepo.List(ctx, nil)
}

func (cs *contactService) Get(ctx context.Context, id uuid.UUID) (*types.Contact, error) {
	found, err := cs.contactRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("error fetching contact: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apperrors.ErrNotFound
	}
	return found[0], nil
}

func (cs *contactService) Create(ctx context.Context, contact *types.Contact) (*types.Contact, error) {
	if err := validateContact(contact); err != nil {
		return nil, err
	}
	contact.ID = uuid.Nil
	if contact.DataSource == "" {
		contact.DataSource = "manual"
	}
	created, err := cs.contactRepo.Create(ctx, nil, []*types.Contact{contact})
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return created[0], nil
}

func (cs *contactService) Update(ctx context.Context, id uuid.UUID, patch *types.Contact) (*types.Contact, error) {
	existing, err := cs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateContact(patch); err != nil {
		return nil, err
	}
	existing.FullName = patch.FullName
	existing.Title = patch.Title
	existing.Agency = patch.Agency
	existing.Department = patch.Department
	existing.State = patch.State
	existing.Email = patch.Email
	existing.Phone = patch.Phone
	existing.ContactType = patch.ContactType
	existing.IsFederal = patch.IsFederal
	return cs.contactRepo.Update(ctx, nil, existing)
}

func (cs *contactService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := cs.Get(ctx, id); err != nil {
		return err
	}
	return cs.contactRepo.Delete(ctx, nil, id)
}

func validateContact(contact *types.Contact) error {
	if strings.TrimSpace(contact.FullName) == "" ||
		strings.TrimSpace(contact.Title) == "" ||
		strings.TrimSpace(contact.Agency) == "" {
		return fmt.Errorf("%w: full name, title and agency are required", apperrors.ErrInvalidArgument)
	}
	if contact.ContactType == "" {
		contact.ContactType = "procurement"
	}
	if _, ok := validContactTypes[contact.ContactType]; !ok {
		return fmt.Errorf("%w: unknown contact type %q", apperrors.ErrInvalidArgument, contact.ContactType)
	}
	return nil
}
