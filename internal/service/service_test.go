package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/research-editing-site/internal/mocks"
	"github.com/research-editing-site/internal/models"
)

func TestPostServiceCreateDerivesSlug(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := newPostService(repo, zerolog.Nop())

	post, errs, err := svc.Create(context.Background(), &models.PostInput{
		Title:  "Désign, Calm! Interfaces",
		Status: "published",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if post.Slug != "design-calm-interfaces" {
		t.Errorf("Slug = %q, want derived from title", post.Slug)
	}
	if post.PublishedAt == "" {
		t.Error("publishing should stamp published_at")
	}
	if post.ID == "" {
		t.Error("post should get a generated id")
	}
}

func TestPostServiceCreateRejectsDuplicateSlug(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	repo.Posts = append(repo.Posts, &models.Post{ID: "p1", Title: "Taken", Slug: "taken", Status: "published"})
	svc := newPostService(repo, zerolog.Nop())

	post, errs, err := svc.Create(context.Background(), &models.PostInput{Title: "Taken"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post != nil {
		t.Errorf("post should not be created, got %+v", post)
	}
	if len(errs) != 1 || errs[0].Field != "slug" {
		t.Errorf("want slug validation error, got %v", errs)
	}
}

func TestPostServiceCreateDefaultsToDraft(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := newPostService(repo, zerolog.Nop())

	post, errs, err := svc.Create(context.Background(), &models.PostInput{Title: "No Status"})
	if err != nil || len(errs) != 0 {
		t.Fatalf("Create failed: %v %v", err, errs)
	}
	if post.Status != models.StatusDraft {
		t.Errorf("Status = %q, want draft", post.Status)
	}
	if post.PublishedAt != "" {
		t.Errorf("draft should not carry published_at, got %q", post.PublishedAt)
	}
}

func TestPostServiceUpdateKeepsOriginalPublishedAt(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	repo.Posts = append(repo.Posts, &models.Post{
		ID: "p1", Title: "Original", Slug: "original",
		Status: "published", PublishedAt: "2024-01-01T00:00:00Z",
	})
	svc := newPostService(repo, zerolog.Nop())

	post, errs, err := svc.Update(context.Background(), "p1", &models.PostInput{
		Title: "Original, Revised", Slug: "original", Status: "published",
	})
	if err != nil || len(errs) != 0 {
		t.Fatalf("Update failed: %v %v", err, errs)
	}
	if post.PublishedAt != "2024-01-01T00:00:00Z" {
		t.Errorf("PublishedAt = %q, want original stamp preserved", post.PublishedAt)
	}
}

func TestPostServiceUpdateMissingPost(t *testing.T) {
	svc := newPostService(mocks.NewMockPostRepository(), zerolog.Nop())

	post, errs, err := svc.Update(context.Background(), "ghost", &models.PostInput{Title: "T"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if post != nil || errs != nil {
		t.Errorf("missing post should yield (nil, nil, nil), got %+v %v", post, errs)
	}
}

func TestPostServiceTagSynthesis(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	svc := newPostService(repo, zerolog.Nop())

	post, _, err := svc.Create(context.Background(), &models.PostInput{
		Title: "Tagged",
		Tags:  []string{"Grant Writing", "", "Style"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(post.Tags) != 2 {
		t.Fatalf("got %d tags, want 2 (empty dropped)", len(post.Tags))
	}
	if post.Tags[0].Slug != "grant-writing" {
		t.Errorf("tag slug = %q", post.Tags[0].Slug)
	}
}

func TestSettingServiceSeedsOnce(t *testing.T) {
	repo := mocks.NewMockSettingRepository()
	svc := newSettingService(repo, zerolog.Nop())
	ctx := context.Background()

	settings, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(settings) != len(models.DefaultSettings) {
		t.Errorf("got %d settings, want %d defaults", len(settings), len(models.DefaultSettings))
	}
	seedCalls := repo.UpsertCalls

	if _, err := svc.All(ctx); err != nil {
		t.Fatalf("second All failed: %v", err)
	}
	if repo.UpsertCalls != seedCalls {
		t.Errorf("defaults were re-seeded on a non-empty table")
	}
}

func TestSettingServiceUpdate(t *testing.T) {
	repo := mocks.NewMockSettingRepository()
	svc := newSettingService(repo, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.All(ctx); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	setting, errs, err := svc.Update(ctx, "posts_per_page", "25")
	if err != nil || len(errs) != 0 {
		t.Fatalf("Update failed: %v %v", err, errs)
	}
	if setting.Value != "25" {
		t.Errorf("Value = %q, want 25", setting.Value)
	}

	_, errs, err = svc.Update(ctx, "blog_enabled", "maybe")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(errs) != 1 {
		t.Errorf("boolean setting accepted non-literal value")
	}

	setting, errs, err = svc.Update(ctx, "unknown_key", "v")
	if err != nil || setting != nil || errs != nil {
		t.Errorf("unknown key should yield (nil, nil, nil), got %+v %v %v", setting, errs, err)
	}
}

func TestAuthServiceAuthenticate(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	repo.Users["u1"] = &models.User{ID: "u1", Email: "ed@example.com", Name: "Ed", PasswordHash: string(hash), Active: true}
	repo.Users["u2"] = &models.User{ID: "u2", Email: "gone@example.com", PasswordHash: string(hash), Active: false}

	svc := newAuthService(repo, zerolog.Nop())
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "ed@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user == nil || user.ID != "u1" {
		t.Fatalf("got %+v, want user u1", user)
	}

	if user, _ := svc.Authenticate(ctx, "ed@example.com", "wrong"); user != nil {
		t.Error("wrong password authenticated")
	}
	if user, _ := svc.Authenticate(ctx, "nobody@example.com", "correct horse"); user != nil {
		t.Error("unknown email authenticated")
	}
	if user, _ := svc.Authenticate(ctx, "gone@example.com", "correct horse"); user != nil {
		t.Error("deactivated account authenticated")
	}
}

func TestUserServiceCreateAndDuplicateEmail(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	svc := newUserService(repo, zerolog.Nop())
	ctx := context.Background()

	user, errs, err := svc.Create(ctx, &models.UserInput{
		Email: "ed@example.com", Name: "Ed", Password: "long-enough",
	})
	if err != nil || len(errs) != 0 {
		t.Fatalf("Create failed: %v %v", err, errs)
	}
	if user.Role != "editor" {
		t.Errorf("Role = %q, want default editor", user.Role)
	}
	if !user.Active {
		t.Error("new users should default to active")
	}
	if user.PasswordHash == "long-enough" {
		t.Error("password stored in plaintext")
	}

	_, errs, err = svc.Create(ctx, &models.UserInput{
		Email: "ed@example.com", Name: "Other Ed", Password: "long-enough",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(errs) != 1 || errs[0].Field != "email" {
		t.Errorf("want duplicate email error, got %v", errs)
	}
}
