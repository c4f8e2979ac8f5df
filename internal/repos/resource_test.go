package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/skillpath/backend/internal/logger"
	"github.com/skillpath/backend/internal/types"
)

func newResourceTestRepo(t *testing.T) (*gorm.DB, ResourceRepo) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&types.Resource{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return db, NewResourceRepo(db, log)
}

func TestFindOrCreateByURLCreatesMissing(t *testing.T) {
	db, repo := newResourceTestRepo(t)
	ctx := context.Background()

	created, err := repo.FindOrCreateByURL(ctx, nil, &types.Resource{
		ID:        uuid.New(),
		Title:     "Fresh",
		URL:       "https://example.com/fresh",
		Type:      "article",
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("FindOrCreateByURL: %v", err)
	}

	var count int64
	if err := db.Model(&types.Resource{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 || created == nil {
		t.Fatalf("create missing: count=%d created=%+v", count, created)
	}
}

func TestFindOrCreateByURLLinksWinnerAndKeepsTransactionUsable(t *testing.T) {
	db, repo := newResourceTestRepo(t)
	ctx := context.Background()

	winner := &types.Resource{
		ID:        uuid.New(),
		Title:     "Winner",
		URL:       "https://example.com/shared",
		Type:      "course",
		CreatedAt: time.Now(),
	}
	if _, err := repo.Create(ctx, nil, []*types.Resource{winner}); err != nil {
		t.Fatalf("seed winner: %v", err)
	}

	otherID := uuid.New()
	err := db.Transaction(func(tx *gorm.DB) error {
		got, fErr := repo.FindOrCreateByURL(ctx, tx, &types.Resource{
			ID:        uuid.New(),
			Title:     "Loser",
			URL:       winner.URL,
			Type:      "course",
			CreatedAt: time.Now(),
		})
		if fErr != nil {
			t.Fatalf("FindOrCreateByURL: %v", fErr)
		}
		if got == nil || got.ID != winner.ID {
			t.Fatalf("winner not reused: %+v", got)
		}
		// The conflict must not abort the transaction; later writes in the
		// same transaction have to commit.
		if _, cErr := repo.Create(ctx, tx, []*types.Resource{{
			ID:        otherID,
			Title:     "After Conflict",
			URL:       "https://example.com/after",
			Type:      "article",
			CreatedAt: time.Now(),
		}}); cErr != nil {
			t.Fatalf("create after conflict: %v", cErr)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}

	var sharedCount int64
	if err := db.Model(&types.Resource{}).Where("url = ?", winner.URL).Count(&sharedCount).Error; err != nil {
		t.Fatalf("count shared: %v", err)
	}
	if sharedCount != 1 {
		t.Fatalf("duplicate catalog rows for url: %d", sharedCount)
	}
	var after types.Resource
	if err := db.Where("id = ?", otherID).First(&after).Error; err != nil {
		t.Fatalf("post-conflict write lost: %v", err)
	}
}
