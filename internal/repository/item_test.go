package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/St1cky1/item-service/internal/entity"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func mustCreate(t *testing.T, repo *ItemRepository, name, category string) *entity.Item {
	t.Helper()
	item, err := repo.Create(context.Background(), &entity.CreateItemRequest{
		Name:     strPtr(name),
		Category: strPtr(category),
	})
	if err != nil {
		t.Fatalf("create %q: %v", name, err)
	}
	return item
}

func TestCreateItemDefaults(t *testing.T) {
	repo := NewItemRepository()

	item := mustCreate(t, repo, "Task A", "General")

	if item.ID != 1 {
		t.Errorf("Expected id 1, got %d", item.ID)
	}
	if item.Completed {
		t.Errorf("Expected completed=false")
	}
	if item.Priority != "medium" {
		t.Errorf("Expected priority medium, got %s", item.Priority)
	}
	if item.Description != nil {
		t.Errorf("Expected absent description, got %q", *item.Description)
	}
	if !item.CreatedAt.Equal(item.UpdatedAt) {
		t.Errorf("Expected createdAt == updatedAt on create")
	}
}

func TestCreateItemTrimsAndDefaultsCategory(t *testing.T) {
	repo := NewItemRepository()

	item, err := repo.Create(context.Background(), &entity.CreateItemRequest{
		Name:        strPtr("  Milk  "),
		Description: strPtr("  two bottles "),
		Priority:    strPtr("high"),
		Completed:   boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item.Name != "Milk" {
		t.Errorf("Expected trimmed name, got %q", item.Name)
	}
	if item.Description == nil || *item.Description != "two bottles" {
		t.Errorf("Expected trimmed description, got %v", item.Description)
	}
	if item.Category != "General" {
		t.Errorf("Expected default category General, got %s", item.Category)
	}
	if item.Priority != "high" || !item.Completed {
		t.Errorf("Expected provided priority/completed, got %s/%v", item.Priority, item.Completed)
	}
}

func TestCreateItemValidation(t *testing.T) {
	tests := []struct {
		name       string
		req        entity.CreateItemRequest
		violations []string
	}{
		{
			name:       "empty name",
			req:        entity.CreateItemRequest{Name: strPtr("")},
			violations: []string{"required"},
		},
		{
			name:       "missing name",
			req:        entity.CreateItemRequest{},
			violations: []string{"required"},
		},
		{
			name:       "blank name",
			req:        entity.CreateItemRequest{Name: strPtr("   ")},
			violations: []string{"required"},
		},
		{
			name:       "long name",
			req:        entity.CreateItemRequest{Name: strPtr(strings.Repeat("a", 101))},
			violations: []string{"100 characters"},
		},
		{
			name:       "raw length counts surrounding whitespace",
			req:        entity.CreateItemRequest{Name: strPtr("  " + strings.Repeat("a", 99) + "  ")},
			violations: []string{"100 characters"},
		},
		{
			name:       "unknown category",
			req:        entity.CreateItemRequest{Name: strPtr("ok"), Category: strPtr("Nonexistent")},
			violations: []string{"General, Work, Personal, Shopping"},
		},
		{
			name:       "accumulates every violation in order",
			req:        entity.CreateItemRequest{Name: strPtr(strings.Repeat(" ", 101)), Category: strPtr("general")},
			violations: []string{"required", "100 characters", "Category must be one of"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewItemRepository()

			item, err := repo.Create(context.Background(), &tt.req)
			if item != nil {
				t.Fatalf("Expected nil item, got %+v", item)
			}

			var verr *entity.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if len(verr.Violations) != len(tt.violations) {
				t.Fatalf("Expected %d violations, got %v", len(tt.violations), verr.Violations)
			}
			for i, want := range tt.violations {
				if !strings.Contains(verr.Violations[i], want) {
					t.Errorf("Violation %d: expected %q in %q", i, want, verr.Violations[i])
				}
			}

			items, _ := repo.List(context.Background())
			if len(items) != 0 {
				t.Errorf("Expected nothing stored, got %d items", len(items))
			}
		})
	}
}

func TestIdentityMonotonicity(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()

	first := mustCreate(t, repo, "one", "Work")
	second := mustCreate(t, repo, "two", "Work")
	if _, err := repo.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	third := mustCreate(t, repo, "three", "Work")

	if !(first.ID < second.ID && second.ID < third.ID) {
		t.Errorf("Expected strictly increasing ids, got %d, %d, %d", first.ID, second.ID, third.ID)
	}
	if third.ID == second.ID {
		t.Errorf("Expected deleted id %d not to be reused", second.ID)
	}
}

func TestConcurrentCreateAssignsUniqueIDs(t *testing.T) {
	repo := NewItemRepository()

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item, err := repo.Create(context.Background(), &entity.CreateItemRequest{Name: strPtr("x")})
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			ids <- item.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("Duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("Expected %d unique ids, got %d", n, len(seen))
	}
}

func TestGetItemNotFound(t *testing.T) {
	repo := NewItemRepository()

	_, err := repo.GetById(context.Background(), 99999)
	if !errors.Is(err, entity.ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
}

func TestGetItemReturnsCopy(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.CreateItemRequest{Name: strPtr("a"), Description: strPtr("desc")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, _ := repo.GetById(ctx, created.ID)
	got.Name = "changed"
	*got.Description = "changed"

	again, _ := repo.GetById(ctx, created.ID)
	if again.Name != "a" || *again.Description != "desc" {
		t.Errorf("Expected stored record to be unaffected, got %+v", again)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return base }
	created := mustCreate(t, repo, "X", "General")

	repo.now = func() time.Time { return base.Add(time.Minute) }
	old, updated, err := repo.Update(ctx, created.ID, &entity.UpdateItemRequest{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if old.Completed || !old.UpdatedAt.Equal(base) {
		t.Errorf("Expected previous record, got %+v", old)
	}

	if updated.Name != "X" || updated.Category != "General" || !updated.Completed {
		t.Errorf("Expected merged item, got %+v", updated)
	}
	if updated.Priority != "medium" {
		t.Errorf("Expected priority preserved, got %s", updated.Priority)
	}
	if !updated.CreatedAt.Equal(base) {
		t.Errorf("Expected createdAt unchanged, got %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("Expected updatedAt refreshed, got %v", updated.UpdatedAt)
	}
}

func TestUpdateValidationLeavesRecordUnchanged(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()
	created := mustCreate(t, repo, "X", "General")

	_, _, err := repo.Update(ctx, created.ID, &entity.UpdateItemRequest{
		Name:      strPtr(" "),
		Completed: boolPtr(true),
	})

	var verr *entity.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}

	stored, _ := repo.GetById(ctx, created.ID)
	if stored.Name != "X" || stored.Completed || !stored.UpdatedAt.Equal(created.UpdatedAt) {
		t.Errorf("Expected record unchanged, got %+v", stored)
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo := NewItemRepository()

	_, _, err := repo.Update(context.Background(), 7, &entity.UpdateItemRequest{Name: strPtr("x")})
	if !errors.Is(err, entity.ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()
	created := mustCreate(t, repo, "X", "General")

	deleted, err := repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if deleted.ID != created.ID {
		t.Errorf("Expected deleted id %d, got %d", created.ID, deleted.ID)
	}

	if _, err := repo.Delete(ctx, created.ID); !errors.Is(err, entity.ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound on second delete, got %v", err)
	}
}

func TestBulkDeletePartial(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()
	item1 := mustCreate(t, repo, "one", "General")
	mustCreate(t, repo, "two", "General")

	result, err := repo.BulkDelete(ctx, []any{float64(1), float64(999), "abc"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Deleted) != 1 || result.Deleted[0].ID != item1.ID {
		t.Errorf("Expected item 1 deleted, got %+v", result.Deleted)
	}
	if len(result.NotFound) != 2 || result.NotFound[0] != float64(999) || result.NotFound[1] != "abc" {
		t.Errorf("Expected notFound [999 abc] in original form, got %v", result.NotFound)
	}

	if _, err := repo.GetById(ctx, item1.ID); !errors.Is(err, entity.ErrItemNotFound) {
		t.Errorf("Expected item 1 to be gone, got %v", err)
	}
	items, _ := repo.List(ctx)
	if len(items) != 1 {
		t.Errorf("Expected 1 item left, got %d", len(items))
	}
}

func TestResetRestartsCounter(t *testing.T) {
	repo := NewItemRepository()
	mustCreate(t, repo, "one", "General")
	mustCreate(t, repo, "two", "General")

	repo.Reset()

	items, _ := repo.List(context.Background())
	if len(items) != 0 {
		t.Errorf("Expected empty repository, got %d items", len(items))
	}
	if item := mustCreate(t, repo, "again", "General"); item.ID != 1 {
		t.Errorf("Expected id 1 after reset, got %d", item.ID)
	}
}
