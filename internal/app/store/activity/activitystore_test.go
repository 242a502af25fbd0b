package activitystore

import (
	"fmt"
	"testing"

	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/assetdesk/internal/testutil"
)

func TestRecordAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db)

	for i := 0; i < 5; i++ {
		if _, err := s.Record(ctx, fmt.Sprintf("event %d", i), models.ActivityAssetCreated); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := s.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want limit 3", len(entries))
	}
	// Newest first.
	if entries[0].Message != "event 4" {
		t.Errorf("first entry = %q, want event 4", entries[0].Message)
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("entries = %d, want all 5 with default limit", len(all))
	}
}
