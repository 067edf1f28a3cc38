package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestResult())

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	for i, l := range labels {
		if l.Side != model.SideB {
			t.Errorf("label %d: expected side B, got %s", i, l.Side)
		}
	}
	// Element order within a side follows the result's element order.
	if labels[0].ElementID != 1 || labels[1].ElementID != 5 || labels[2].ElementID != 3 {
		t.Errorf("unexpected label order: %+v", labels)
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestResult()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("labels file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("labels file is empty")
	}
}

func TestExportLabels_EmptyResult(t *testing.T) {
	res := buildTestResult()
	res.Elements = nil

	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := ExportLabels(path, res); err == nil {
		t.Fatal("expected an error for a result without elements")
	}
}
