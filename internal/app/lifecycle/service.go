// Package lifecycle owns every write that touches both the assets and
// assignments collections, so the two can never drift apart: assigning an
// asset, returning it, editing or deleting an assignment all funnel through
// here and end with the asset's status recomputed from its assignments.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	assetstore "github.com/dalemusser/assetdesk/internal/app/store/assets"
	assignmentstore "github.com/dalemusser/assetdesk/internal/app/store/assignments"
	"github.com/dalemusser/assetdesk/internal/app/system/activitylog"
	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"github.com/dalemusser/assetdesk/internal/app/system/txn"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Service struct {
	assets      *assetstore.Store
	assignments *assignmentstore.Store
	activity    *activitylog.Logger
	db          *mongo.Database
	log         *zap.Logger
}

func New(assets *assetstore.Store, assignments *assignmentstore.Store, activity *activitylog.Logger, db *mongo.Database, log *zap.Logger) *Service {
	return &Service{
		assets:      assets,
		assignments: assignments,
		activity:    activity,
		db:          db,
		log:         log,
	}
}

// CreateInput is the validated input for CreateAssignment. AssetTag has
// already been normalized by the handler.
type CreateInput struct {
	AssetTag       string
	EmployeeName   string
	EmployeeID     string
	Department     string
	AssignmentDate time.Time
	Notes          string
	AssignedBy     string
}

// CreateAssignment assigns the asset with the given tag to an employee.
//
// The asset must currently be Available. The status flip and the assignment
// insert happen inside one transaction; the flip is a compare-and-swap on
// status so two concurrent creates for the same asset cannot both succeed.
func (s *Service) CreateAssignment(ctx context.Context, in CreateInput) (models.Assignment, error) {
	asset, err := s.assets.GetByTag(ctx, in.AssetTag)
	if err != nil {
		return models.Assignment{}, err
	}

	when := in.AssignmentDate
	if when.IsZero() {
		when = time.Now().UTC()
	}

	a := models.Assignment{
		AssetID:        asset.ID,
		EmployeeName:   in.EmployeeName,
		EmployeeID:     in.EmployeeID,
		Department:     in.Department,
		AssignmentDate: when,
		Notes:          in.Notes,
		AssignedBy:     in.AssignedBy,
		Status:         models.AssignmentActive,
	}

	err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		ok, err := s.assets.UpdateStatusIf(ctx, asset.ID, models.AssetAvailable, models.AssetAssigned)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict("asset %s is not available for assignment", asset.Tag)
		}
		a, err = s.assignments.Create(ctx, a)
		return err
	})
	if err != nil {
		return models.Assignment{}, err
	}

	s.activity.Record(ctx,
		fmt.Sprintf("Asset %s assigned to %s", asset.Tag, a.EmployeeName),
		models.ActivityAssignmentCreated)
	return a, nil
}

// UpdateInput is a merge-patch for an assignment. Nil fields are unchanged.
type UpdateInput struct {
	EmployeeName   *string
	EmployeeID     *string
	Department     *string
	AssignmentDate *time.Time
	ReturnedDate   *time.Time
	Notes          *string
	AssignedBy     *string
	Status         *models.AssignmentStatus
}

// UpdateAssignment applies a merge update. When the patch moves the
// assignment between Active and Returned the referenced asset's status is
// recomputed afterward; setting status Returned without a returned date
// defaults it to now. Reactivating a returned assignment conflicts when the
// asset already has another active assignment.
func (s *Service) UpdateAssignment(ctx context.Context, id primitive.ObjectID, in UpdateInput) (models.Assignment, error) {
	current, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return models.Assignment{}, err
	}

	patch := bson.M{}
	if in.EmployeeName != nil {
		patch["employee_name"] = *in.EmployeeName
	}
	if in.EmployeeID != nil {
		patch["employee_id"] = *in.EmployeeID
	}
	if in.Department != nil {
		patch["department"] = *in.Department
	}
	if in.AssignmentDate != nil {
		patch["assignment_date"] = *in.AssignmentDate
	}
	if in.ReturnedDate != nil {
		patch["returned_date"] = *in.ReturnedDate
	}
	if in.Notes != nil {
		patch["notes"] = *in.Notes
	}
	if in.AssignedBy != nil {
		patch["assigned_by"] = *in.AssignedBy
	}

	statusChanged := false
	reactivating := false
	if in.Status != nil && *in.Status != current.Status {
		if !in.Status.Valid() {
			return models.Assignment{}, apperr.Validation("invalid assignment status %q", string(*in.Status))
		}
		patch["status"] = *in.Status
		statusChanged = true
		reactivating = *in.Status == models.AssignmentActive
		if *in.Status == models.AssignmentReturned && in.ReturnedDate == nil && current.ReturnedDate == nil {
			patch["returned_date"] = time.Now().UTC()
		}
	}

	var updated models.Assignment
	if reactivating {
		// Flipping a returned assignment back to Active must not give the
		// asset a second active assignment. The check and the update run in
		// one transaction; the assignment itself is Returned so it does not
		// count itself.
		err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
			active, err := s.assignments.CountActiveByAsset(ctx, current.AssetID)
			if err != nil {
				return err
			}
			if active > 0 {
				return apperr.Conflict("asset already has an active assignment")
			}
			updated, err = s.assignments.Update(ctx, id, patch)
			return err
		})
	} else {
		updated, err = s.assignments.Update(ctx, id, patch)
	}
	if err != nil {
		return models.Assignment{}, err
	}

	if statusChanged {
		if err := s.syncAssetStatus(ctx, updated.AssetID); err != nil {
			return models.Assignment{}, err
		}
	}
	return updated, nil
}

// ReturnAssignment marks an assignment Returned and recomputes the asset's
// status. A zero returnedDate defaults to now. Returning an already-returned
// assignment is a conflict.
func (s *Service) ReturnAssignment(ctx context.Context, id primitive.ObjectID, returnedDate time.Time) (models.Assignment, error) {
	current, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return models.Assignment{}, err
	}
	if !current.IsActive() {
		return models.Assignment{}, apperr.Conflict("assignment is already returned")
	}

	if returnedDate.IsZero() {
		returnedDate = time.Now().UTC()
	}

	updated, err := s.assignments.Update(ctx, id, bson.M{
		"status":        models.AssignmentReturned,
		"returned_date": returnedDate,
	})
	if err != nil {
		return models.Assignment{}, err
	}

	if err := s.syncAssetStatus(ctx, updated.AssetID); err != nil {
		return models.Assignment{}, err
	}

	s.activity.Record(ctx,
		fmt.Sprintf("Assignment for %s returned", updated.EmployeeName),
		models.ActivityAssignmentReturned)
	return updated, nil
}

// DeleteAssignment removes an assignment and recomputes the referenced
// asset's status, so deleting the only Active assignment frees the asset.
func (s *Service) DeleteAssignment(ctx context.Context, id primitive.ObjectID) error {
	current, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.assignments.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.syncAssetStatus(ctx, current.AssetID); err != nil {
		return err
	}

	s.activity.Record(ctx,
		fmt.Sprintf("Assignment for %s deleted", current.EmployeeName),
		models.ActivityAssignmentDeleted)
	return nil
}

// syncAssetStatus recomputes an asset's status from its assignments: any
// Active assignment makes it Assigned; none and currently Assigned makes it
// Available. UnderRepair is administrative state and is left alone. A missing
// asset is not an error here (the assignment may outlive its asset).
func (s *Service) syncAssetStatus(ctx context.Context, assetID primitive.ObjectID) error {
	asset, err := s.assets.GetByID(ctx, assetID)
	if apperr.KindOf(err) == apperr.KindNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if asset.Status == models.AssetUnderRepair {
		return nil
	}

	active, err := s.assignments.CountActiveByAsset(ctx, assetID)
	if err != nil {
		return err
	}

	want := asset.Status
	switch {
	case active > 0:
		want = models.AssetAssigned
	case asset.Status == models.AssetAssigned:
		want = models.AssetAvailable
	}
	if want == asset.Status {
		return nil
	}
	return s.assets.SetStatus(ctx, assetID, want)
}

// GetAssignment returns one assignment joined with its asset.
func (s *Service) GetAssignment(ctx context.Context, id primitive.ObjectID) (assignmentstore.WithAsset, error) {
	return s.assignments.GetByIDWithAsset(ctx, id)
}

// ListAssignments returns all assignments joined with their assets.
func (s *Service) ListAssignments(ctx context.Context) ([]assignmentstore.WithAsset, error) {
	return s.assignments.ListWithAsset(ctx)
}

// GetAssignmentsByStatus filters by status; "All" (or empty) returns
// everything.
func (s *Service) GetAssignmentsByStatus(ctx context.Context, status string) ([]assignmentstore.WithAsset, error) {
	if status == "" || status == "All" {
		return s.assignments.ListWithAsset(ctx)
	}
	st := models.AssignmentStatus(status)
	if !st.Valid() {
		return nil, apperr.Validation("invalid assignment status %q", status)
	}
	return s.assignments.ListByStatusWithAsset(ctx, st)
}

// SearchAssignments matches the term against employee name, employee id,
// and department.
func (s *Service) SearchAssignments(ctx context.Context, term string) ([]assignmentstore.WithAsset, error) {
	return s.assignments.SearchWithAsset(ctx, term)
}

// Summary is the dashboard's assignment rollup.
type Summary struct {
	TotalAssignments    int64 `json:"total_assignments"`
	ActiveAssignments   int64 `json:"active_assignments"`
	ReturnedAssignments int64 `json:"returned_assignments"`
	AvailableAssets     int64 `json:"available_assets"`
}

// GetAssignmentSummary returns counts for the dashboard. Total always equals
// active plus returned.
func (s *Service) GetAssignmentSummary(ctx context.Context) (Summary, error) {
	var sum Summary
	var err error

	if sum.ActiveAssignments, err = s.assignments.CountByStatus(ctx, models.AssignmentActive); err != nil {
		return sum, err
	}
	if sum.ReturnedAssignments, err = s.assignments.CountByStatus(ctx, models.AssignmentReturned); err != nil {
		return sum, err
	}
	sum.TotalAssignments = sum.ActiveAssignments + sum.ReturnedAssignments

	if sum.AvailableAssets, err = s.assets.CountByStatus(ctx, models.AssetAvailable); err != nil {
		return sum, err
	}
	return sum, nil
}

// ExportRow is one flattened line of the assignment CSV export.
type ExportRow struct {
	AssetTag       string
	AssetName      string
	EmployeeName   string
	EmployeeID     string
	Department     string
	AssignmentDate time.Time
	ReturnedDate   *time.Time
	AssignedBy     string
	Status         models.AssignmentStatus
}

// ExportRows returns all assignments flattened for CSV export. Assignments
// whose asset has been deleted keep empty tag/name columns.
func (s *Service) ExportRows(ctx context.Context) ([]ExportRow, error) {
	rows, err := s.assignments.ListWithAsset(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		row := ExportRow{
			EmployeeName:   r.EmployeeName,
			EmployeeID:     r.EmployeeID,
			Department:     r.Department,
			AssignmentDate: r.AssignmentDate,
			ReturnedDate:   r.ReturnedDate,
			AssignedBy:     r.AssignedBy,
			Status:         r.Status,
		}
		if r.Asset != nil {
			row.AssetTag = r.Asset.Tag
			row.AssetName = r.Asset.Name
		}
		out = append(out, row)
	}
	return out, nil
}
