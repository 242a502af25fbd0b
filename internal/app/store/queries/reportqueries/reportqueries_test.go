package reportqueries

import (
	"testing"

	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/assetdesk/internal/testutil"
)

func TestReportAggregations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	q := New(db)

	a1 := fx.CreateAsset(ctx, "AST-001", "SN-001")
	a2 := fx.CreateAssetWithStatus(ctx, "AST-002", "SN-002", models.AssetAssigned)
	fx.CreateAssetWithStatus(ctx, "AST-003", "SN-003", models.AssetUnderRepair)

	fx.CreateAssignment(ctx, a2.ID, "Asha Rao", "E100", "Engineering")
	fx.CreateAssignment(ctx, a2.ID, "Bipin Kumar", "E101", "Finance")

	fx.CreateMaintenance(ctx, a1.ID, models.MaintenanceRepair, 120.50)
	fx.CreateMaintenance(ctx, a1.ID, models.MaintenanceService, 79.50)

	byStatus, err := q.AssetCountsByStatus(ctx)
	if err != nil {
		t.Fatalf("AssetCountsByStatus: %v", err)
	}
	if byStatus["Available"] != 1 || byStatus["Assigned"] != 1 || byStatus["UnderRepair"] != 1 {
		t.Errorf("byStatus = %v", byStatus)
	}

	byCategory, err := q.AssetCountsByCategory(ctx)
	if err != nil {
		t.Fatalf("AssetCountsByCategory: %v", err)
	}
	if byCategory["IT"] != 3 {
		t.Errorf("byCategory = %v, want IT:3", byCategory)
	}

	byDept, err := q.AssignmentCountsByDepartment(ctx)
	if err != nil {
		t.Fatalf("AssignmentCountsByDepartment: %v", err)
	}
	if byDept["Engineering"] != 1 || byDept["Finance"] != 1 {
		t.Errorf("byDept = %v", byDept)
	}

	assetCost, err := q.TotalAssetCost(ctx)
	if err != nil {
		t.Fatalf("TotalAssetCost: %v", err)
	}
	// Three fixture assets at 999.99 each.
	if assetCost < 2999.96 || assetCost > 2999.98 {
		t.Errorf("assetCost = %v, want ~2999.97", assetCost)
	}

	maintCost, err := q.TotalMaintenanceCost(ctx)
	if err != nil {
		t.Fatalf("TotalMaintenanceCost: %v", err)
	}
	if maintCost != 200.0 {
		t.Errorf("maintCost = %v, want 200", maintCost)
	}
}

func TestReportAggregations_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	q := New(db)

	byStatus, err := q.AssetCountsByStatus(ctx)
	if err != nil {
		t.Fatalf("AssetCountsByStatus: %v", err)
	}
	if len(byStatus) != 0 {
		t.Errorf("byStatus = %v, want empty", byStatus)
	}

	total, err := q.TotalAssetCost(ctx)
	if err != nil {
		t.Fatalf("TotalAssetCost: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %v, want 0 on empty collection", total)
	}
}
