package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

func TestSaveLoadAppConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	config := model.DefaultAppConfig()
	config.DefaultStudHeightThreshold = 750
	config.DefaultBoundsStrategy = model.BoundsMidpoints
	config.AddRecentRun("/runs/a.json")

	if err := SaveAppConfig(path, config); err != nil {
		t.Fatalf("SaveAppConfig returned error: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig returned error: %v", err)
	}
	if loaded.DefaultStudHeightThreshold != 750 {
		t.Errorf("expected threshold 750, got %v", loaded.DefaultStudHeightThreshold)
	}
	if loaded.DefaultBoundsStrategy != model.BoundsMidpoints {
		t.Errorf("expected midpoints strategy, got %v", loaded.DefaultBoundsStrategy)
	}
	if len(loaded.RecentRuns) != 1 || loaded.RecentRuns[0] != "/runs/a.json" {
		t.Errorf("unexpected recent runs: %v", loaded.RecentRuns)
	}
}

func TestLoadAppConfig_MissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	config, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig returned error: %v", err)
	}
	if config.DefaultStudHeightThreshold != 500 {
		t.Errorf("expected default threshold 500, got %v", config.DefaultStudHeightThreshold)
	}
	if config.RecentRuns == nil {
		t.Error("RecentRuns must never be nil")
	}
}

func TestDefaultRunsDir(t *testing.T) {
	config := model.DefaultAppConfig()
	if DefaultRunsDir(config) == "" {
		t.Error("default runs dir must not be empty")
	}

	config.RunsDir = "/custom/runs"
	if DefaultRunsDir(config) != "/custom/runs" {
		t.Errorf("RunsDir override ignored, got %s", DefaultRunsDir(config))
	}
}
