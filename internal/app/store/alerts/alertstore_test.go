package alertstore

import (
	"testing"
	"time"

	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/assetdesk/internal/testutil"
)

func TestCreateListDeleteExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db)

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(24 * time.Hour)

	if _, err := s.Create(ctx, models.Alert{Title: "expired", Level: models.AlertInfo, ExpireAt: &past}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, models.Alert{Title: "current", Level: models.AlertWarning, ExpireAt: &future}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, models.Alert{Title: "forever", Level: models.AlertCritical}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// List filters out the expired alert.
	alerts, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("alerts = %d, want 2 unexpired", len(alerts))
	}

	// DeleteExpired removes only the past one.
	n, err := s.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
}
