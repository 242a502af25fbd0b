// internal/app/features/assignments/export.go
package assignments

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/system/httpjson"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleExport handles GET /assignments/export: all assignments as a CSV
// attachment with a UTF-8 BOM and CRLF line endings so Excel opens it
// cleanly.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "assignments CSV export")
	defer cancel()

	rows, err := h.Lifecycle.ExportRows(ctx)
	if err != nil {
		httpjson.WriteError(w, h.Log, "assignments CSV export", err)
		return
	}

	filename := fmt.Sprintf("assignments_%s.csv", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	// UTF-8 BOM for Excel
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		h.Log.Error("CSV write failed (BOM)", zap.Error(err))
		return
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	defer cw.Flush()

	if err := cw.Write([]string{"asset_tag", "asset_name", "employee_name", "employee_id", "department", "assignment_date", "returned_date", "assigned_by", "status"}); err != nil {
		h.Log.Error("CSV write failed (header)", zap.Error(err))
		return
	}

	for _, row := range rows {
		returned := ""
		if row.ReturnedDate != nil {
			returned = row.ReturnedDate.Format(time.RFC3339)
		}
		if err := cw.Write([]string{
			sanitizeCSVField(row.AssetTag),
			sanitizeCSVField(row.AssetName),
			sanitizeCSVField(row.EmployeeName),
			sanitizeCSVField(row.EmployeeID),
			sanitizeCSVField(row.Department),
			row.AssignmentDate.Format(time.RFC3339),
			returned,
			sanitizeCSVField(row.AssignedBy),
			string(row.Status),
		}); err != nil {
			h.Log.Error("CSV write failed (row)", zap.Error(err))
			return
		}
	}

	h.Log.Info("assignments CSV exported", zap.Int("rows", len(rows)))
}

// sanitizeCSVField prevents CSV formula injection.
func sanitizeCSVField(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return s
}
