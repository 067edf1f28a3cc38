// FacadeMatch — Facade Element Classifier and Detection Matcher
//
// A command-line tool that correlates 3D facade model elements (panels,
// door framing, windows) with 2D image detections: it derives the
// building footprint, splits floors, groups door framing into openings,
// classifies every element to a facade side, and matches each detection
// to its nearest element.
//
// Build:
//   go build -o facadematch ./cmd/facadematch
//
// Usage:
//   facadematch -elements model.json -detections detections.json -out results/
//   facadematch -elements model.json -detections detections.csv -xlsx takeoff.xlsx -pdf report.pdf

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/FacadeMatch/internal/engine"
	"github.com/piwi3910/FacadeMatch/internal/export"
	"github.com/piwi3910/FacadeMatch/internal/importer"
	"github.com/piwi3910/FacadeMatch/internal/model"
	"github.com/piwi3910/FacadeMatch/internal/project"
)

func main() {
	var (
		elementsPath   = flag.String("elements", "", "path to the element dump JSON (required)")
		detectionsPath = flag.String("detections", "", "path to the detection file: .json, .csv, or .xlsx (required)")
		planPath       = flag.String("plan", "", "optional DXF floor plan whose closed shapes are added as panels")
		planZMin       = flag.Float64("plan-zmin", 0, "Z min in mm for panels imported from the plan")
		planZMax       = flag.Float64("plan-zmax", 3000, "Z max in mm for panels imported from the plan")
		outDir         = flag.String("out", "", "directory for result JSON files (default: runs dir from config)")
		xlsxPath       = flag.String("xlsx", "", "optional takeoff workbook output path")
		pdfPath        = flag.String("pdf", "", "optional match report PDF output path")
		labelsPath     = flag.String("labels", "", "optional QR label sheet PDF output path")
		configPath     = flag.String("config", project.DefaultConfigPath(), "application config file")

		boundsStrategy = flag.String("bounds", "", "bounds strategy: extents or midpoints")
		floorStat      = flag.String("floor-stat", "", "floor statistic: bottom or center")
		pairStrategy   = flag.String("pairing", "", "stud pairing strategy: adjacent or rows")
		panelGrouping  = flag.String("panel-grouping", "", "panel aggregation: none or components")
		doorGrouping   = flag.String("door-grouping", "", "door composition: components (studs+headers) or none (one opening per element)")
		studThreshold  = flag.Float64("stud-threshold", -1, "stud height threshold in mm")
		floorTolerance = flag.Float64("floor-tolerance", -1, "same-floor tolerance in mm")
		edgeTolerance  = flag.Float64("edge-tolerance", -1, "edge tolerance in mm, 0 = nearest edge always wins")
		verbose        = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *elementsPath == "" || *detectionsPath == "" {
		fmt.Fprintln(os.Stderr, "both -elements and -detections are required")
		flag.Usage()
		os.Exit(1)
	}

	config, err := project.LoadAppConfig(*configPath)
	if err != nil {
		fatal(logger, "cannot load config", err)
	}

	settings := config.Settings()
	settings.Logger = logger
	applyFlags(&settings, *boundsStrategy, *floorStat, *pairStrategy,
		*panelGrouping, *doorGrouping,
		*studThreshold, *floorTolerance, *edgeTolerance)

	set, err := importer.LoadElements(*elementsPath)
	if err != nil {
		fatal(logger, "cannot load elements", err)
	}
	logger.Info("elements loaded",
		"panels", len(set.Panels), "doors", len(set.Doors), "windows", len(set.Windows))

	if *planPath != "" {
		planPanels, warnings, err := importer.ImportPanelPlan(*planPath, *planZMin, *planZMax, nextPanelID(set.Panels))
		if err != nil {
			fatal(logger, "cannot import plan", err)
		}
		for _, w := range warnings {
			logger.Warn(w)
		}
		set.Panels = append(set.Panels, planPanels...)
		logger.Info("plan panels imported", "count", len(planPanels))
	}

	detections, err := loadDetections(*detectionsPath, logger)
	if err != nil {
		fatal(logger, "cannot load detections", err)
	}
	logger.Info("detections loaded", "count", len(detections))

	res, err := engine.New(settings).Run(set.Panels, set.Doors, set.Windows, detections)
	if err != nil {
		fatal(logger, "pipeline failed", err)
	}

	runsDir := *outDir
	if runsDir == "" {
		runsDir = project.DefaultRunsDir(config)
	}
	resultPath, err := project.SaveResult(runsDir, res)
	if err != nil {
		fatal(logger, "cannot save result", err)
	}
	logger.Info("result saved", "path", resultPath)

	if err := export.ExportElements(filepath.Join(runsDir, res.RunID+"_elements.json"), res); err != nil {
		fatal(logger, "cannot export elements", err)
	}
	if err := export.ExportSequences(filepath.Join(runsDir, res.RunID+"_sequences.json"), res); err != nil {
		fatal(logger, "cannot export sequences", err)
	}
	if err := export.ExportMatchReport(filepath.Join(runsDir, res.RunID+"_matches.json"), res); err != nil {
		fatal(logger, "cannot export match report", err)
	}

	if *xlsxPath != "" {
		if err := export.ExportExcel(*xlsxPath, res); err != nil {
			fatal(logger, "cannot export workbook", err)
		}
		logger.Info("workbook written", "path", *xlsxPath)
	}
	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, res); err != nil {
			fatal(logger, "cannot export PDF report", err)
		}
		logger.Info("PDF report written", "path", *pdfPath)
	}
	if *labelsPath != "" {
		if err := export.ExportLabels(*labelsPath, res); err != nil {
			fatal(logger, "cannot export labels", err)
		}
		logger.Info("label sheet written", "path", *labelsPath)
	}

	config.AddRecentRun(resultPath)
	if err := project.SaveAppConfig(*configPath, config); err != nil {
		logger.Warn("cannot update config", "error", err)
	}

	fmt.Printf("run %s: side %s (score %.1f), %d/%d detections matched\n",
		res.RunID, res.Side, res.SideScore, matchedCount(res), len(res.Matches))
}

// applyFlags overrides config-derived settings with any flags the user set.
// Negative numeric values mean "not set".
func applyFlags(s *model.Settings, bounds, floorStat, pairing, panelGrouping, doorGrouping string,
	studThreshold, floorTolerance, edgeTolerance float64) {

	if bounds != "" {
		s.BoundsStrategy = model.BoundsStrategy(bounds)
	}
	if floorStat != "" {
		s.FloorStat = model.FloorStat(floorStat)
	}
	if pairing != "" {
		s.PairStrategy = model.PairStrategy(pairing)
	}
	if panelGrouping != "" {
		s.PanelGrouping = model.GroupStrategy(panelGrouping)
	}
	if doorGrouping != "" {
		s.DoorGrouping = model.GroupStrategy(doorGrouping)
	}
	if studThreshold >= 0 {
		s.StudHeightThreshold = studThreshold
	}
	if floorTolerance >= 0 {
		s.SameFloorTolerance = floorTolerance
	}
	if edgeTolerance >= 0 {
		s.EdgeTolerance = edgeTolerance
	}
}

// loadDetections dispatches on file extension and surfaces import
// errors and warnings through the logger.
func loadDetections(path string, logger *slog.Logger) ([]model.Detection, error) {
	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		result = importer.ImportJSON(path)
	case ".csv", ".txt":
		result = importer.ImportCSV(path)
	case ".xlsx":
		result = importer.ImportExcel(path)
	default:
		return nil, fmt.Errorf("unsupported detection file format: %s", filepath.Ext(path))
	}

	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			logger.Error(e)
		}
		return nil, fmt.Errorf("%d detection records could not be imported", len(result.Errors))
	}
	return result.Detections, nil
}

// nextPanelID returns an ID above every existing panel ID.
func nextPanelID(panels []model.Element) int {
	next := 1
	for _, p := range panels {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

func matchedCount(res *engine.Result) int {
	n := 0
	for _, m := range res.Matches {
		if m.Matched() {
			n++
		}
	}
	return n
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
