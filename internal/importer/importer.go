// Package importer ingests image-detector output from JSON, CSV, and
// Excel files, and 3D element dumps from the host model. CSV import
// supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

// ImportResult holds the results of a detection import operation.
type ImportResult struct {
	Detections []model.Detection
	Errors     []string
	Warnings   []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ID    int
	Label int
	Floor int
	X     int
	Y     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":    {"id", "detection", "detection id", "det", "index"},
	"label": {"label", "class", "type", "object", "category"},
	"floor": {"floor", "storey", "story", "level"},
	"x":     {"x", "x_norm", "xnorm", "center_x", "cx", "x center"},
	"y":     {"y", "y_norm", "ynorm", "center_y", "cy", "y center"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		ID:    -1,
		Label: -1,
		Floor: -1,
		X:     -1,
		Y:     -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "id":
						if mapping.ID == -1 {
							mapping.ID = i
						}
					case "label":
						if mapping.Label == -1 {
							mapping.Label = i
						}
					case "floor":
						if mapping.Floor == -1 {
							mapping.Floor = i
						}
					case "x":
						if mapping.X == -1 {
							mapping.X = i
						}
					case "y":
						if mapping.Y == -1 {
							mapping.Y = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: ID, Label, Floor, X, Y
		return ColumnMapping{
			ID:    0,
			Label: 1,
			Floor: 2,
			X:     3,
			Y:     4,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Detection from a row using the given column mapping.
// Returns the detection, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (model.Detection, string, string) {
	id := getCell(row, mapping.ID)
	if id == "" {
		id = strconv.Itoa(count + 1)
	}

	label := getCell(row, mapping.Label)
	if label == "" {
		return model.Detection{}, fmt.Sprintf("%s: Missing label value", rowLabel), ""
	}

	var warning string
	if _, ok := model.CanonicalType(label); !ok {
		warning = fmt.Sprintf("%s: Unknown label '%s', kept as-is", rowLabel, label)
	}

	floorStr := getCell(row, mapping.Floor)
	if floorStr == "" {
		return model.Detection{}, fmt.Sprintf("%s: Missing floor value", rowLabel), ""
	}
	floor, err := strconv.Atoi(floorStr)
	if err != nil || (floor != 1 && floor != 2) {
		return model.Detection{}, fmt.Sprintf("%s: Invalid floor '%s' (expected 1 or 2)", rowLabel, floorStr), ""
	}

	xStr := getCell(row, mapping.X)
	if xStr == "" {
		return model.Detection{}, fmt.Sprintf("%s: Missing x value", rowLabel), ""
	}
	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		return model.Detection{}, fmt.Sprintf("%s: Invalid x '%s'", rowLabel, xStr), ""
	}

	det := model.Detection{
		ID:    id,
		Label: label,
		Floor: model.Floor(floor),
		XNorm: x,
	}

	// Optional Y coordinate
	if yStr := getCell(row, mapping.Y); yStr != "" {
		y, err := strconv.ParseFloat(yStr, 64)
		if err != nil {
			warning = fmt.Sprintf("%s: Invalid y '%s', ignored", rowLabel, yStr)
		} else {
			det.YNorm = &y
		}
	}

	return det, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportJSON imports detections from the detector's native JSON file:
// an array of {id, label, floor, center_xy_norm} records.
func ImportJSON(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	var detections []model.Detection
	if err := json.Unmarshal(data, &detections); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid detection JSON: %v", err))
		return result
	}

	for i, det := range detections {
		if det.Label == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Record %d: missing label", i+1))
			continue
		}
		if det.Floor != model.Floor1 && det.Floor != model.Floor2 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Record %d: Invalid floor '%d' (expected 1 or 2)", i+1, det.Floor))
			continue
		}
		if _, ok := model.CanonicalType(det.Label); !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Record %d: unknown label '%s', kept as-is", i+1, det.Label))
		}
		result.Detections = append(result.Detections, det)
	}

	return result
}

// ImportCSV imports detections from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports detections from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports detections from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into detections.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Label == -1 {
			missing = append(missing, "Label")
		}
		if mapping.Floor == -1 {
			missing = append(missing, "Floor")
		}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: check if the floor column is numeric (positional mapping)
		if len(rows[0]) >= 3 {
			if _, err := strconv.Atoi(strings.TrimSpace(rows[0][2])); err != nil {
				// Might be an unrecognized header; skip it but keep positional mapping
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		det, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Detections))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Detections = append(result.Detections, det)
	}

	return result
}
