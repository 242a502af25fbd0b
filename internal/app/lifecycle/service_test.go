package lifecycle

import (
	"sync"
	"testing"
	"time"

	assetstore "github.com/dalemusser/assetdesk/internal/app/store/assets"
	assignmentstore "github.com/dalemusser/assetdesk/internal/app/store/assignments"
	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/assetdesk/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *testutil.Fixtures, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	svc := New(assetstore.New(db), assignmentstore.New(db), nil, db, zap.NewNop())
	return svc, fx, db
}

func TestCreateAssignment(t *testing.T) {
	svc, fx, db := newTestService(t)
	ctx := testutil.TestContext(t)

	asset := fx.CreateAsset(ctx, "AST-001", "SN-001")

	a, err := svc.CreateAssignment(ctx, CreateInput{
		AssetTag:     "AST-001",
		EmployeeName: "Asha Rao",
		EmployeeID:   "E100",
		Department:   "Engineering",
		AssignedBy:   "admin",
	})
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}
	if a.Status != models.AssignmentActive {
		t.Errorf("status = %s, want Active", a.Status)
	}
	if a.AssetID != asset.ID {
		t.Errorf("asset_id = %s, want %s", a.AssetID.Hex(), asset.ID.Hex())
	}
	if a.AssignmentDate.IsZero() {
		t.Error("assignment_date should default to now")
	}

	got, err := assetstore.New(db).GetByID(ctx, asset.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.AssetAssigned {
		t.Errorf("asset status = %s, want Assigned", got.Status)
	}
}

func TestCreateAssignment_UnknownTag(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := testutil.TestContext(t)

	_, err := svc.CreateAssignment(ctx, CreateInput{
		AssetTag:     "NOPE-404",
		EmployeeName: "Asha Rao",
		EmployeeID:   "E100",
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not-found", err)
	}

	// No assignment may be persisted for a failed create.
	n, err := assignmentstore.New(db).Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("assignments = %d, want 0", n)
	}
}

func TestCreateAssignment_NotAvailable(t *testing.T) {
	svc, fx, _ := newTestService(t)
	ctx := testutil.TestContext(t)

	fx.CreateAssetWithStatus(ctx, "AST-002", "SN-002", models.AssetUnderRepair)

	_, err := svc.CreateAssignment(ctx, CreateInput{
		AssetTag:     "AST-002",
		EmployeeName: "Bipin Rao",
		EmployeeID:   "E101",
	})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestCreateAssignment_Concurrent(t *testing.T) {
	svc, fx, db := newTestService(t)
	ctx := testutil.TestContext(t)

	fx.CreateAsset(ctx, "AST-003", "SN-003")

	const workers = 2
	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateAssignment(ctx, CreateInput{
				AssetTag:     "AST-003",
				EmployeeName: "Racer",
				EmployeeID:   "E200",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if apperr.KindOf(err) != apperr.KindConflict {
			t.Errorf("loser should fail with conflict, got %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("successes = %d, want exactly 1", succeeded)
	}

	n, err := assignmentstore.New(db).CountByStatus(ctx, models.AssignmentActive)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if n != 1 {
		t.Errorf("active assignments = %d, want 1", n)
	}
}

func TestReturnAssignment(t *testing.T) {
	svc, fx, db := newTestService(t)
	ctx := testutil.TestContext(t)

	asset := fx.CreateAsset(ctx, "AST-004", "SN-004")

	created, err := svc.CreateAssignment(ctx, CreateInput{
		AssetTag:     "AST-004",
		EmployeeName: "Asha Rao",
		EmployeeID:   "E100",
	})
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}

	returned, err := svc.ReturnAssignment(ctx, created.ID, time.Time{})
	if err != nil {
		t.Fatalf("ReturnAssignment: %v", err)
	}
	if returned.Status != models.AssignmentReturned {
		t.Errorf("status = %s, want Returned", returned.Status)
	}
	if returned.ReturnedDate == nil {
		t.Error("returned_date should default to now")
	}

	got, err := assetstore.New(db).GetByID(ctx, asset.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.AssetAvailable {
		t.Errorf("asset status = %s, want Available after return", got.Status)
	}

	// Returning again is a conflict.
	if _, err := svc.ReturnAssignment(ctx, created.ID, time.Time{}); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("second return: err = %v, want conflict", err)
	}
}

func TestDeleteAssignment_FreesAsset(t *testing.T) {
	svc, fx, db := newTestService(t)
	ctx := testutil.TestContext(t)

	asset := fx.CreateAsset(ctx, "AST-005", "SN-005")

	created, err := svc.CreateAssignment(ctx, CreateInput{
		AssetTag:     "AST-005",
		EmployeeName: "Asha Mehta",
		EmployeeID:   "E102",
	})
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}

	if err := svc.DeleteAssignment(ctx, created.ID); err != nil {
		t.Fatalf("DeleteAssignment: %v", err)
	}

	got, err := assetstore.New(db).GetByID(ctx, asset.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.AssetAvailable {
		t.Errorf("asset status = %s, want Available after deleting its only assignment", got.Status)
	}
}

func TestUpdateAssignment_StatusSync(t *testing.T) {
	svc, fx, db := newTestService(t)
	ctx := testutil.TestContext(t)

	asset := fx.CreateAsset(ctx, "AST-006", "SN-006")

	created, err := svc.CreateAssignment(ctx, CreateInput{
		AssetTag:     "AST-006",
		EmployeeName: "Asha Rao",
		EmployeeID:   "E100",
	})
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}

	st := models.AssignmentReturned
	updated, err := svc.UpdateAssignment(ctx, created.ID, UpdateInput{Status: &st})
	if err != nil {
		t.Fatalf("UpdateAssignment: %v", err)
	}
	if updated.ReturnedDate == nil {
		t.Error("returned_date should be defaulted when status moves to Returned")
	}

	got, err := assetstore.New(db).GetByID(ctx, asset.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.AssetAvailable {
		t.Errorf("asset status = %s, want Available", got.Status)
	}

	// Flip back to Active: the asset must become Assigned again.
	st = models.AssignmentActive
	if _, err := svc.UpdateAssignment(ctx, created.ID, UpdateInput{Status: &st}); err != nil {
		t.Fatalf("UpdateAssignment: %v", err)
	}
	got, err = assetstore.New(db).GetByID(ctx, asset.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.AssetAssigned {
		t.Errorf("asset status = %s, want Assigned", got.Status)
	}
}

func TestUpdateAssignment_ReactivateConflictsWithActive(t *testing.T) {
	svc, fx, db := newTestService(t)
	ctx := testutil.TestContext(t)

	asset := fx.CreateAsset(ctx, "AST-010", "SN-010")

	first, err := svc.CreateAssignment(ctx, CreateInput{
		AssetTag:     "AST-010",
		EmployeeName: "Asha Rao",
		EmployeeID:   "E100",
	})
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}
	if _, err := svc.ReturnAssignment(ctx, first.ID, time.Time{}); err != nil {
		t.Fatalf("ReturnAssignment: %v", err)
	}

	// The asset is Available again; hand it to someone else.
	second, err := svc.CreateAssignment(ctx, CreateInput{
		AssetTag:     "AST-010",
		EmployeeName: "Bipin Kumar",
		EmployeeID:   "E101",
	})
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}

	// Reactivating the first assignment would give the asset two active
	// assignments; it must conflict and leave everything unchanged.
	st := models.AssignmentActive
	if _, err := svc.UpdateAssignment(ctx, first.ID, UpdateInput{Status: &st}); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("reactivate: err = %v, want conflict", err)
	}

	got, err := svc.GetAssignment(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetAssignment: %v", err)
	}
	if got.Status != models.AssignmentReturned {
		t.Errorf("first assignment status = %s, want still Returned", got.Status)
	}

	active, err := assignmentstore.New(db).CountActiveByAsset(ctx, asset.ID)
	if err != nil {
		t.Fatalf("CountActiveByAsset: %v", err)
	}
	if active != 1 {
		t.Errorf("active assignments = %d, want only %s's", active, second.EmployeeName)
	}
}

func TestSyncAssetStatus_UnderRepairUntouched(t *testing.T) {
	svc, fx, db := newTestService(t)
	ctx := testutil.TestContext(t)

	asset := fx.CreateAssetWithStatus(ctx, "AST-007", "SN-007", models.AssetUnderRepair)
	a := fx.CreateAssignment(ctx, asset.ID, "Bipin Rao", "E101", "Finance")

	if err := svc.DeleteAssignment(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAssignment: %v", err)
	}

	got, err := assetstore.New(db).GetByID(ctx, asset.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.AssetUnderRepair {
		t.Errorf("asset status = %s, want UnderRepair untouched by recompute", got.Status)
	}
}

func TestGetAssignmentSummary(t *testing.T) {
	svc, fx, _ := newTestService(t)
	ctx := testutil.TestContext(t)

	fx.CreateAsset(ctx, "AST-010", "SN-010")
	fx.CreateAsset(ctx, "AST-011", "SN-011")
	fx.CreateAsset(ctx, "AST-012", "SN-012")

	a1, err := svc.CreateAssignment(ctx, CreateInput{AssetTag: "AST-010", EmployeeName: "Asha Rao", EmployeeID: "E100"})
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}
	if _, err := svc.CreateAssignment(ctx, CreateInput{AssetTag: "AST-011", EmployeeName: "Bipin Rao", EmployeeID: "E101"}); err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}
	if _, err := svc.ReturnAssignment(ctx, a1.ID, time.Time{}); err != nil {
		t.Fatalf("ReturnAssignment: %v", err)
	}

	sum, err := svc.GetAssignmentSummary(ctx)
	if err != nil {
		t.Fatalf("GetAssignmentSummary: %v", err)
	}
	if sum.TotalAssignments != sum.ActiveAssignments+sum.ReturnedAssignments {
		t.Errorf("total %d != active %d + returned %d",
			sum.TotalAssignments, sum.ActiveAssignments, sum.ReturnedAssignments)
	}
	if sum.ActiveAssignments != 1 || sum.ReturnedAssignments != 1 {
		t.Errorf("active/returned = %d/%d, want 1/1", sum.ActiveAssignments, sum.ReturnedAssignments)
	}
	// AST-010 returned, AST-012 never assigned.
	if sum.AvailableAssets != 2 {
		t.Errorf("available assets = %d, want 2", sum.AvailableAssets)
	}
}

func TestSearchAssignments(t *testing.T) {
	svc, fx, _ := newTestService(t)
	ctx := testutil.TestContext(t)

	a1 := fx.CreateAsset(ctx, "AST-020", "SN-020")
	a2 := fx.CreateAsset(ctx, "AST-021", "SN-021")
	a3 := fx.CreateAsset(ctx, "AST-022", "SN-022")

	fx.CreateAssignment(ctx, a1.ID, "Asha Rao", "E100", "Engineering")
	fx.CreateAssignment(ctx, a2.ID, "Asha Mehta", "E102", "Finance")
	fx.CreateAssignment(ctx, a3.ID, "Bipin Rao", "E101", "Engineering")

	rows, err := svc.SearchAssignments(ctx, "asha")
	if err != nil {
		t.Fatalf("SearchAssignments: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("search 'asha' = %d rows, want 2", len(rows))
	}

	rows, err = svc.SearchAssignments(ctx, "rao")
	if err != nil {
		t.Fatalf("SearchAssignments: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("search 'rao' = %d rows, want 2", len(rows))
	}

	rows, err = svc.SearchAssignments(ctx, "engineering")
	if err != nil {
		t.Fatalf("SearchAssignments: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("search 'engineering' = %d rows, want 2", len(rows))
	}

	rows, err = svc.SearchAssignments(ctx, "E102")
	if err != nil {
		t.Fatalf("SearchAssignments: %v", err)
	}
	if len(rows) != 1 || rows[0].EmployeeName != "Asha Mehta" {
		t.Fatalf("search 'E102' = %v, want only Asha Mehta", rows)
	}
}

func TestGetAssignmentsByStatus(t *testing.T) {
	svc, fx, _ := newTestService(t)
	ctx := testutil.TestContext(t)

	fx.CreateAsset(ctx, "AST-030", "SN-030")
	if _, err := svc.CreateAssignment(ctx, CreateInput{AssetTag: "AST-030", EmployeeName: "Asha Rao", EmployeeID: "E100"}); err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}

	rows, err := svc.GetAssignmentsByStatus(ctx, "Active")
	if err != nil {
		t.Fatalf("GetAssignmentsByStatus: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("active rows = %d, want 1", len(rows))
	}
	if rows[0].Asset == nil || rows[0].Asset.Tag != "AST-030" {
		t.Error("joined asset missing from status filter result")
	}

	rows, err = svc.GetAssignmentsByStatus(ctx, "All")
	if err != nil {
		t.Fatalf("GetAssignmentsByStatus: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("all rows = %d, want 1", len(rows))
	}

	if _, err := svc.GetAssignmentsByStatus(ctx, "Bogus"); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("bogus status: err = %v, want validation", err)
	}
}
