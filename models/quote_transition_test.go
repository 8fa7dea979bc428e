package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &ContactMethod{}, &Service{}, &Quote{}, &QuoteImage{}, &QuoteStatusHistory{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func historyCount(t *testing.T, db *gorm.DB, quoteID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&QuoteStatusHistory{}).Where("quote_id = ?", quoteID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count history: %v", err)
	}
	return count
}

func TestQuoteTransitionWritesOneHistoryRow(t *testing.T) {
	db := openTestDB(t)

	quote := Quote{Name: "Jordan", Email: "jordan@example.com"}
	if err := db.Create(&quote).Error; err != nil {
		t.Fatalf("failed to create quote: %v", err)
	}
	if quote.Status != QuoteNew {
		t.Fatalf("new quote status = %s, want %s", quote.Status, QuoteNew)
	}

	admin := uint(1)
	if err := quote.Transition(db, QuoteInReview, &admin, "Priced"); err != nil {
		t.Fatalf("transition to in_review failed: %v", err)
	}
	if got := historyCount(t, db, quote.ID); got != 1 {
		t.Errorf("history rows after one transition = %d, want 1", got)
	}

	if err := quote.Transition(db, QuoteAccepted, nil, "Customer approved"); err != nil {
		t.Fatalf("transition to accepted failed: %v", err)
	}
	if got := historyCount(t, db, quote.ID); got != 2 {
		t.Errorf("history rows after two transitions = %d, want 2", got)
	}

	var reloaded Quote
	if err := db.First(&reloaded, quote.ID).Error; err != nil {
		t.Fatalf("failed to reload quote: %v", err)
	}
	if reloaded.Status != QuoteAccepted {
		t.Errorf("persisted status = %s, want %s", reloaded.Status, QuoteAccepted)
	}
	if reloaded.AcceptedAt == nil {
		t.Error("AcceptedAt should be stamped on acceptance")
	}
	if reloaded.CompletedAt != nil {
		t.Error("CompletedAt should not be stamped yet")
	}

	var last QuoteStatusHistory
	if err := db.Where("quote_id = ?", quote.ID).Order("id DESC").First(&last).Error; err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	if last.Status != QuoteAccepted || last.ChangedBy != nil {
		t.Errorf("last history row = %+v, want accepted with no actor", last)
	}
}

func TestQuoteTransitionRejectionLeavesNoHistory(t *testing.T) {
	db := openTestDB(t)

	quote := Quote{Name: "Jordan"}
	if err := db.Create(&quote).Error; err != nil {
		t.Fatalf("failed to create quote: %v", err)
	}

	// new -> completed skips the whole lifecycle.
	if err := quote.Transition(db, QuoteCompleted, nil, ""); err == nil {
		t.Fatal("expected invalid transition to fail")
	}
	if got := historyCount(t, db, quote.ID); got != 0 {
		t.Errorf("history rows after rejected transition = %d, want 0", got)
	}

	var reloaded Quote
	if err := db.First(&reloaded, quote.ID).Error; err != nil {
		t.Fatalf("failed to reload quote: %v", err)
	}
	if reloaded.Status != QuoteNew {
		t.Errorf("status after rejected transition = %s, want %s", reloaded.Status, QuoteNew)
	}
}

func TestQuoteTransitionCompletedStampsTimestamp(t *testing.T) {
	db := openTestDB(t)

	quote := Quote{Name: "Jordan"}
	if err := db.Create(&quote).Error; err != nil {
		t.Fatalf("failed to create quote: %v", err)
	}

	steps := []QuoteStatus{QuoteInReview, QuoteAccepted, QuoteScheduled, QuoteCompleted}
	for _, step := range steps {
		if err := quote.Transition(db, step, nil, ""); err != nil {
			t.Fatalf("transition to %s failed: %v", step, err)
		}
	}
	if got := historyCount(t, db, quote.ID); got != int64(len(steps)) {
		t.Errorf("history rows = %d, want %d", got, len(steps))
	}
	if quote.CompletedAt == nil {
		t.Error("CompletedAt should be stamped on completion")
	}
}
