package profile

import (
	"context"
	"errors"
	"testing"
)

func TestUpdateIndividualPreservesAvatar(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if err := svc.SetAvatar(ctx, VariantIndividual, []byte("portrait")); err != nil {
		t.Fatalf("set avatar: %v", err)
	}

	updated, err := svc.UpdateIndividual(ctx, Individual{
		FullName:    "Ada Example",
		Email:       "ada@example.com",
		DateOfBirth: "1990-05-20",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if string(updated.Avatar) != "portrait" {
		t.Fatalf("update must not touch the stored avatar, got %q", updated.Avatar)
	}

	stored, err := svc.GetIndividual(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.FullName != "Ada Example" || string(stored.Avatar) != "portrait" {
		t.Fatalf("stored profile wrong: %+v", stored)
	}
}

func TestUpdateRejectsMalformedDates(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if _, err := svc.UpdateIndividual(ctx, Individual{DateOfBirth: "20-05-1990"}); err == nil {
		t.Fatalf("malformed date_of_birth must be rejected")
	}
	if _, err := svc.UpdateOrganization(ctx, Organization{FoundingDate: "May 1990"}); err == nil {
		t.Fatalf("malformed founding_date must be rejected")
	}
	// Empty dates are allowed: the profile starts blank.
	if _, err := svc.UpdateIndividual(ctx, Individual{FullName: "Ada"}); err != nil {
		t.Fatalf("empty date must pass: %v", err)
	}
}

func TestVariantsAreIndependent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if _, err := svc.UpdateIndividual(ctx, Individual{FullName: "Ada Example"}); err != nil {
		t.Fatalf("update individual: %v", err)
	}
	if _, err := svc.UpdateOrganization(ctx, Organization{Name: "Example Ltd"}); err != nil {
		t.Fatalf("update organization: %v", err)
	}

	org, err := svc.GetOrganization(ctx)
	if err != nil {
		t.Fatalf("get organization: %v", err)
	}
	if org.Name != "Example Ltd" {
		t.Fatalf("organization profile wrong: %+v", org)
	}
	ind, err := svc.GetIndividual(ctx)
	if err != nil {
		t.Fatalf("get individual: %v", err)
	}
	if ind.FullName != "Ada Example" {
		t.Fatalf("individual profile wrong: %+v", ind)
	}
}

func TestAvatarLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if err := svc.SetAvatar(ctx, VariantOrganization, nil); err == nil {
		t.Fatalf("empty image must be rejected")
	}
	if err := svc.SetAvatar(ctx, Variant("Guild"), []byte("img")); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("unknown variant: expected ErrUnknownVariant, got %v", err)
	}

	if err := svc.SetAvatar(ctx, VariantOrganization, []byte("logo")); err != nil {
		t.Fatalf("set logo: %v", err)
	}
	org, err := svc.GetOrganization(ctx)
	if err != nil || string(org.Logo) != "logo" {
		t.Fatalf("logo not stored: %+v err=%v", org, err)
	}

	if err := svc.DeleteAvatar(ctx, VariantOrganization); err != nil {
		t.Fatalf("delete logo: %v", err)
	}
	org, err = svc.GetOrganization(ctx)
	if err != nil || org.Logo != nil {
		t.Fatalf("logo not removed: %+v err=%v", org, err)
	}
}

func TestParseVariant(t *testing.T) {
	for _, name := range []string{"Individual", "Organization"} {
		if _, err := ParseVariant(name); err != nil {
			t.Fatalf("variant %q: %v", name, err)
		}
	}
	for _, name := range []string{"", "individual", "Company", "Org"} {
		if _, err := ParseVariant(name); !errors.Is(err, ErrUnknownVariant) {
			t.Fatalf("variant %q: expected ErrUnknownVariant, got %v", name, err)
		}
	}
}
