package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("ID,Label,Floor,X\n0,door,1,0.25\n1,window,2,0.72\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("ID;Label;Floor;X\n0;door;1;0.25\n1;window;2;0.72\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("ID\tLabel\tFloor\tX\n0\tdoor\t1\t0.25\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"ID", "Label", "Floor", "X", "Y"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.ID != 0 {
		t.Errorf("expected ID at 0, got %d", mapping.ID)
	}
	if mapping.Label != 1 {
		t.Errorf("expected Label at 1, got %d", mapping.Label)
	}
	if mapping.Floor != 2 {
		t.Errorf("expected Floor at 2, got %d", mapping.Floor)
	}
	if mapping.X != 3 {
		t.Errorf("expected X at 3, got %d", mapping.X)
	}
	if mapping.Y != 4 {
		t.Errorf("expected Y at 4, got %d", mapping.Y)
	}
}

func TestDetectColumns_Aliases(t *testing.T) {
	row := []string{"class", "storey", "center_x"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 {
		t.Errorf("expected Label at 0, got %d", mapping.Label)
	}
	if mapping.Floor != 1 {
		t.Errorf("expected Floor at 1, got %d", mapping.Floor)
	}
	if mapping.X != 2 {
		t.Errorf("expected X at 2, got %d", mapping.X)
	}
	if mapping.ID != -1 {
		t.Errorf("expected ID unmapped, got %d", mapping.ID)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"0", "door", "1", "0.25"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("numeric data row must not be treated as a header")
	}
	if mapping.ID != 0 || mapping.Label != 1 || mapping.Floor != 2 || mapping.X != 3 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── ImportCSV Tests ───────────────────────────────────────

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("cannot write temp file: %v", err)
	}
	return path
}

func TestImportCSV_WithHeader(t *testing.T) {
	path := writeTempFile(t, "detections.csv",
		"ID,Label,Floor,X,Y\n0,door,1,0.25,0.8\n1,window,2,0.72,0.3\n")

	result := ImportCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Detections) != 2 {
		t.Fatalf("expected 2 detections, got %d", len(result.Detections))
	}

	d := result.Detections[0]
	if d.ID != "0" || d.Label != "door" || int(d.Floor) != 1 || d.XNorm != 0.25 {
		t.Errorf("unexpected first detection: %+v", d)
	}
	if d.YNorm == nil || *d.YNorm != 0.8 {
		t.Errorf("expected Y 0.8, got %v", d.YNorm)
	}
}

func TestImportCSV_SemicolonDelimited(t *testing.T) {
	path := writeTempFile(t, "detections.csv",
		"ID;Label;Floor;X\n0;door;1;0.25\n1;window;2;0.72\n")

	result := ImportCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Detections) != 2 {
		t.Fatalf("expected 2 detections, got %d", len(result.Detections))
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Errorf("expected a delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSV_NoHeaderPositional(t *testing.T) {
	path := writeTempFile(t, "detections.csv",
		"0,door,1,0.25\n1,window,2,0.72\n")

	result := ImportCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Detections) != 2 {
		t.Fatalf("expected 2 detections, got %d", len(result.Detections))
	}
}

func TestImportCSV_InvalidFloor(t *testing.T) {
	path := writeTempFile(t, "detections.csv",
		"ID,Label,Floor,X\n0,door,3,0.25\n1,window,2,0.72\n")

	result := ImportCSV(path)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Invalid floor") {
		t.Errorf("unexpected error message: %s", result.Errors[0])
	}
	if len(result.Detections) != 1 {
		t.Errorf("the valid row must still import, got %d detections", len(result.Detections))
	}
}

func TestImportCSV_MissingLabelColumn(t *testing.T) {
	path := writeTempFile(t, "detections.csv",
		"ID,Floor,X\n0,1,0.25\n")

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for the missing Label column")
	}
	if !strings.Contains(result.Errors[0], "Label") {
		t.Errorf("unexpected error message: %s", result.Errors[0])
	}
}

func TestImportCSV_UnknownLabelWarns(t *testing.T) {
	path := writeTempFile(t, "detections.csv",
		"ID,Label,Floor,X\n0,gargoyle,1,0.25\n")

	result := ImportCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Detections) != 1 {
		t.Fatalf("unknown labels are kept, got %d detections", len(result.Detections))
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "gargoyle") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unknown-label warning, got %v", result.Warnings)
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "")

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for an empty file")
	}
}

func TestImportCSV_SkipsBlankLines(t *testing.T) {
	path := writeTempFile(t, "detections.csv",
		"ID,Label,Floor,X\n0,door,1,0.25\n\n1,window,2,0.72\n")

	result := ImportCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Detections) != 2 {
		t.Fatalf("expected 2 detections, got %d", len(result.Detections))
	}
}

// ─── ImportJSON Tests ──────────────────────────────────────

func TestImportJSON_NativeShape(t *testing.T) {
	path := writeTempFile(t, "detections.json", `[
		{"id": 0, "label": "door", "floor": 1, "center_xy_norm": [0.25, 0.8]},
		{"id": "w1", "label": "window", "floor": 2, "center_xy_norm": [0.72]}
	]`)

	result := ImportJSON(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Detections) != 2 {
		t.Fatalf("expected 2 detections, got %d", len(result.Detections))
	}
	if result.Detections[0].ID != "0" {
		t.Errorf("numeric id must coerce to string, got %q", result.Detections[0].ID)
	}
	if result.Detections[1].ID != "w1" {
		t.Errorf("expected string id preserved, got %q", result.Detections[1].ID)
	}
}

func TestImportJSON_InvalidFloor(t *testing.T) {
	path := writeTempFile(t, "detections.json", `[
		{"id": 0, "label": "door", "floor": 3, "center_xy_norm": [0.25]},
		{"id": 1, "label": "window", "center_xy_norm": [0.5]},
		{"id": 2, "label": "window", "floor": 2, "center_xy_norm": [0.72]}
	]`)

	result := ImportJSON(path)
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Invalid floor '3'") {
		t.Errorf("unexpected error message: %s", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "Invalid floor '0'") {
		t.Errorf("missing floor must be rejected, got: %s", result.Errors[1])
	}
	if len(result.Detections) != 1 || result.Detections[0].ID != "2" {
		t.Errorf("only the valid record must survive, got %+v", result.Detections)
	}
}

func TestImportJSON_InvalidPayload(t *testing.T) {
	path := writeTempFile(t, "detections.json", `{"not": "an array"}`)

	result := ImportJSON(path)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for a non-array payload")
	}
}

// ─── ImportExcel Tests ─────────────────────────────────────

func TestImportExcel_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detections.xlsx")

	f := excelize.NewFile()
	rows := [][]any{
		{"ID", "Label", "Floor", "X"},
		{0, "door", 1, 0.25},
		{1, "window", 2, 0.72},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("cannot set cell: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("cannot save workbook: %v", err)
	}
	f.Close()

	result := ImportExcel(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Detections) != 2 {
		t.Fatalf("expected 2 detections, got %d", len(result.Detections))
	}
	if result.Detections[1].Label != "window" || result.Detections[1].XNorm != 0.72 {
		t.Errorf("unexpected second detection: %+v", result.Detections[1])
	}
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "nope.xlsx"))
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for a missing file")
	}
}
