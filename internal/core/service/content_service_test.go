package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

type stubProgramRepo struct {
	programs  []domain.Program
	lastQuery ports.ProgramQuery
}

func (r *stubProgramRepo) Create(_ context.Context, program *domain.Program) (*domain.Program, error) {
	clone := *program
	clone.ID = "g" + strconv.Itoa(len(r.programs)+1)
	r.programs = append(r.programs, clone)
	out := clone
	return &out, nil
}

func (r *stubProgramRepo) FindByID(_ context.Context, id string) (*domain.Program, error) {
	for _, p := range r.programs {
		if p.ID == id {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrProgramNotFound
}

func (r *stubProgramRepo) List(_ context.Context, q ports.ProgramQuery) ([]domain.Program, error) {
	r.lastQuery = q
	return r.programs, nil
}

func (r *stubProgramRepo) Update(_ context.Context, id string, _ ports.ProgramPatch) (*domain.Program, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProgramRepo) Delete(_ context.Context, _ string) error {
	return nil
}

func TestProgramService_List_OrderingFallback(t *testing.T) {
	repo := &stubProgramRepo{}
	svc := NewProgramService(repo)

	if _, err := svc.List(context.Background(), ports.ProgramQuery{OrderBy: "password"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastQuery.OrderBy != "order" {
		t.Fatalf("unknown ordering must fall back to order, got %q", repo.lastQuery.OrderBy)
	}

	if _, err := svc.List(context.Background(), ports.ProgramQuery{OrderBy: "created_at", Search: "youth"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastQuery.OrderBy != "created_at" || repo.lastQuery.Search != "youth" {
		t.Fatalf("valid query must pass through, got %+v", repo.lastQuery)
	}
}

type stubSettingsRepo struct {
	docs []domain.HeaderSettings
}

func (r *stubSettingsRepo) Create(_ context.Context, settings *domain.HeaderSettings) (*domain.HeaderSettings, error) {
	clone := *settings
	clone.ID = "s" + strconv.Itoa(len(r.docs)+1)
	r.docs = append(r.docs, clone)
	out := clone
	return &out, nil
}

func (r *stubSettingsRepo) FindByID(_ context.Context, id string) (*domain.HeaderSettings, error) {
	for _, d := range r.docs {
		if d.ID == id {
			clone := d
			return &clone, nil
		}
	}
	return nil, domain.ErrSettingsNotFound
}

func (r *stubSettingsRepo) FindFirst(_ context.Context) (*domain.HeaderSettings, error) {
	if len(r.docs) == 0 {
		return nil, domain.ErrSettingsNotFound
	}
	clone := r.docs[0]
	return &clone, nil
}

func (r *stubSettingsRepo) List(_ context.Context) ([]domain.HeaderSettings, error) {
	return r.docs, nil
}

func (r *stubSettingsRepo) Update(_ context.Context, id string, _ ports.HeaderSettingsPatch) (*domain.HeaderSettings, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubSettingsRepo) Delete(_ context.Context, _ string) error {
	return nil
}

func TestSettingsService_GetActive_CreatesDefault(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := NewSettingsService(repo)

	settings, err := svc.GetActive(context.Background())
	if err != nil {
		t.Fatalf("GetActive failed: %v", err)
	}
	if settings.SiteTitle != "Your Site Title" {
		t.Fatalf("unexpected default title: %q", settings.SiteTitle)
	}
	if settings.HeaderBackgroundColor != "#ffffff" || settings.HeaderTextColor != "#000000" {
		t.Fatalf("unexpected default colors: %+v", settings)
	}
	if !settings.ShowHeader {
		t.Fatalf("default header must be visible")
	}
	if len(repo.docs) != 1 {
		t.Fatalf("expected default document to be persisted, have %d", len(repo.docs))
	}

	// A second call returns the stored document instead of creating another.
	again, err := svc.GetActive(context.Background())
	if err != nil {
		t.Fatalf("second GetActive failed: %v", err)
	}
	if again.ID != settings.ID {
		t.Fatalf("expected the same document, got %q vs %q", again.ID, settings.ID)
	}
	if len(repo.docs) != 1 {
		t.Fatalf("GetActive must not create duplicates, have %d", len(repo.docs))
	}
}
