package profile

import (
	"context"
	"fmt"
)

// Service manages the two profile records. Updates replace the text fields
// and leave the stored avatar untouched; avatars change only through
// SetAvatar and DeleteAvatar.
type Service struct {
	repo Repository
}

// NewService creates a profile service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpdateIndividual replaces the personal profile fields.
func (s *Service) UpdateIndividual(ctx context.Context, p Individual) (Individual, error) {
	if err := validateDate("date_of_birth", p.DateOfBirth); err != nil {
		return Individual{}, err
	}
	current, err := s.repo.GetIndividual(ctx)
	if err != nil {
		return Individual{}, err
	}
	p.Avatar = current.Avatar
	if err := s.repo.PutIndividual(ctx, p); err != nil {
		return Individual{}, err
	}
	return p, nil
}

// UpdateOrganization replaces the business profile fields.
func (s *Service) UpdateOrganization(ctx context.Context, p Organization) (Organization, error) {
	if err := validateDate("founding_date", p.FoundingDate); err != nil {
		return Organization{}, err
	}
	current, err := s.repo.GetOrganization(ctx)
	if err != nil {
		return Organization{}, err
	}
	p.Logo = current.Logo
	if err := s.repo.PutOrganization(ctx, p); err != nil {
		return Organization{}, err
	}
	return p, nil
}

// GetIndividual returns the personal profile.
func (s *Service) GetIndividual(ctx context.Context) (Individual, error) {
	return s.repo.GetIndividual(ctx)
}

// GetOrganization returns the business profile.
func (s *Service) GetOrganization(ctx context.Context) (Organization, error) {
	return s.repo.GetOrganization(ctx)
}

// SetAvatar stores the avatar (Individual) or logo (Organization) image.
func (s *Service) SetAvatar(ctx context.Context, v Variant, image []byte) error {
	if len(image) == 0 {
		return fmt.Errorf("avatar image must not be empty")
	}
	switch v {
	case VariantIndividual:
		p, err := s.repo.GetIndividual(ctx)
		if err != nil {
			return err
		}
		p.Avatar = image
		return s.repo.PutIndividual(ctx, p)
	case VariantOrganization:
		p, err := s.repo.GetOrganization(ctx)
		if err != nil {
			return err
		}
		p.Logo = image
		return s.repo.PutOrganization(ctx, p)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
}

// DeleteAvatar removes the stored avatar or logo.
func (s *Service) DeleteAvatar(ctx context.Context, v Variant) error {
	switch v {
	case VariantIndividual:
		p, err := s.repo.GetIndividual(ctx)
		if err != nil {
			return err
		}
		p.Avatar = nil
		return s.repo.PutIndividual(ctx, p)
	case VariantOrganization:
		p, err := s.repo.GetOrganization(ctx)
		if err != nil {
			return err
		}
		p.Logo = nil
		return s.repo.PutOrganization(ctx, p)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
}
