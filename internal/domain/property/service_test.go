package property

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakePropertyRepo struct {
	items map[uuid.UUID]*Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{items: map[uuid.UUID]*Property{}}
}

func (f *fakePropertyRepo) Create(ctx context.Context, p *Property) error {
	f.items[p.ID] = p
	return nil
}

func (f *fakePropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	return f.items[id], nil
}

func (f *fakePropertyRepo) Update(ctx context.Context, p *Property) error {
	if _, ok := f.items[p.ID]; !ok {
		return ErrPropertyNotFound
	}
	f.items[p.ID] = p
	return nil
}

func (f *fakePropertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return ErrPropertyNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakePropertyRepo) List(ctx context.Context, filter *Filter, pagination *Pagination) ([]*Property, int, error) {
	out := []*Property{}
	for _, p := range f.items {
		out = append(out, p)
	}
	return out, len(out), nil
}

func TestCreateSetsOwnerAndStatus(t *testing.T) {
	svc := NewService(newFakePropertyRepo())
	owner := uuid.New()

	p, err := svc.Create(context.Background(), owner, &CreatePropertyRequest{
		Title:        "City College",
		Description:  "Engineering institute",
		PropertyType: "college",
		City:         "Almaty",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.OwnerID != owner {
		t.Fatalf("expected owner %s, got %s", owner, p.OwnerID)
	}
	if p.Status != StatusActive {
		t.Fatalf("expected new listing active, got %s", p.Status)
	}
}

func TestUpdateByNonOwnerRejected(t *testing.T) {
	repo := newFakePropertyRepo()
	svc := NewService(repo)
	owner := uuid.New()

	p, err := svc.Create(context.Background(), owner, &CreatePropertyRequest{
		Title:        "City College",
		Description:  "Engineering institute",
		PropertyType: "college",
		City:         "Almaty",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Hijacked"
	_, err = svc.Update(context.Background(), p.ID, uuid.New(), false, &UpdatePropertyRequest{Title: &title})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	// An admin may update someone else's listing.
	if _, err := svc.Update(context.Background(), p.ID, uuid.New(), true, &UpdatePropertyRequest{Title: &title}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if repo.items[p.ID].Title != "Hijacked" {
		t.Fatalf("expected admin update applied, got %q", repo.items[p.ID].Title)
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc := NewService(newFakePropertyRepo())
	owner := uuid.New()

	p, err := svc.Create(context.Background(), owner, &CreatePropertyRequest{
		Title:        "City College",
		Description:  "Engineering institute",
		PropertyType: "college",
		City:         "Almaty",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	city := "Astana"
	updated, err := svc.Update(context.Background(), p.ID, owner, false, &UpdatePropertyRequest{City: &city})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.City != "Astana" {
		t.Fatalf("expected city updated, got %q", updated.City)
	}
	if updated.Title != "City College" {
		t.Fatalf("expected title untouched, got %q", updated.Title)
	}
}

func TestDeleteByNonOwnerRejected(t *testing.T) {
	svc := NewService(newFakePropertyRepo())
	owner := uuid.New()

	p, err := svc.Create(context.Background(), owner, &CreatePropertyRequest{
		Title:        "City College",
		Description:  "Engineering institute",
		PropertyType: "college",
		City:         "Almaty",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), p.ID, uuid.New(), false); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID, owner, false); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestGetUnknownProperty(t *testing.T) {
	svc := NewService(newFakePropertyRepo())

	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}
