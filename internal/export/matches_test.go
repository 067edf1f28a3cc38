package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildMatchReport(t *testing.T) {
	res := buildTestResult()
	report := BuildMatchReport(res)

	if report.RunID != res.RunID {
		t.Errorf("expected run id %s, got %s", res.RunID, report.RunID)
	}
	if report.ClassifiedSide != res.Side {
		t.Errorf("expected side %s, got %s", res.Side, report.ClassifiedSide)
	}
	if report.Timestamp.IsZero() {
		t.Error("timestamp must be set")
	}
	if report.MatchedCount() != 1 {
		t.Errorf("expected 1 matched detection, got %d", report.MatchedCount())
	}
	if len(report.Matches) != 2 {
		t.Errorf("expected 2 match records, got %d", len(report.Matches))
	}
}

func TestExportMatchReport_WireFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.json")
	if err := ExportMatchReport(path, buildTestResult()); err != nil {
		t.Fatalf("ExportMatchReport returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read export: %v", err)
	}

	var doc struct {
		RunID   string                   `json:"run_id"`
		Matches []map[string]interface{} `json:"matches"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.RunID != "ab12cd34" {
		t.Errorf("unexpected run id %q", doc.RunID)
	}
	if len(doc.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(doc.Matches))
	}
	for _, key := range []string{"yolo_id", "label", "bim_id", "bim_tag"} {
		if _, ok := doc.Matches[0][key]; !ok {
			t.Errorf("missing match field %q", key)
		}
	}
}
