package model

// AppConfig holds user-level application configuration persisted between runs.
type AppConfig struct {
	// Default pipeline settings applied to new runs
	DefaultBoundsStrategy       BoundsStrategy `json:"default_bounds_strategy"`
	DefaultFloorStat            FloorStat      `json:"default_floor_stat"`
	DefaultPairStrategy         PairStrategy   `json:"default_pair_strategy"`
	DefaultPanelGrouping        GroupStrategy  `json:"default_panel_grouping"`
	DefaultDoorGrouping         GroupStrategy  `json:"default_door_grouping"`
	DefaultStudHeightThreshold  float64        `json:"default_stud_height_threshold_mm"`
	DefaultSameFloorTolerance   float64        `json:"default_same_floor_tolerance_mm"`
	DefaultEdgeTolerance        float64        `json:"default_edge_tolerance_mm"`
	DefaultClassifyWindowFloors bool           `json:"default_classify_window_floors"`
	DefaultDoorWeight           float64        `json:"default_door_weight"`
	DefaultWindowWeight         float64        `json:"default_window_weight"`
	DefaultPanelWeight          float64        `json:"default_panel_weight"`
	DefaultInteriorThreshold    float64        `json:"default_interior_threshold"`

	// Application preferences
	RunsDir    string   `json:"runs_dir"` // empty = <config dir>/runs
	RecentRuns []string `json:"recent_runs"`
	Verbose    bool     `json:"verbose"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultBoundsStrategy:       defaults.BoundsStrategy,
		DefaultFloorStat:            defaults.FloorStat,
		DefaultPairStrategy:         defaults.PairStrategy,
		DefaultPanelGrouping:        defaults.PanelGrouping,
		DefaultDoorGrouping:         defaults.DoorGrouping,
		DefaultStudHeightThreshold:  defaults.StudHeightThreshold,
		DefaultSameFloorTolerance:   defaults.SameFloorTolerance,
		DefaultEdgeTolerance:        defaults.EdgeTolerance,
		DefaultClassifyWindowFloors: defaults.ClassifyWindowFloors,
		DefaultDoorWeight:           defaults.DoorWeight,
		DefaultWindowWeight:         defaults.WindowWeight,
		DefaultPanelWeight:          defaults.PanelWeight,
		DefaultInteriorThreshold:    defaults.InteriorThreshold,
		RecentRuns:                  []string{},
	}
}

// Settings converts the stored defaults into a pipeline Settings value.
func (c AppConfig) Settings() Settings {
	return Settings{
		BoundsStrategy:       c.DefaultBoundsStrategy,
		FloorStat:            c.DefaultFloorStat,
		PairStrategy:         c.DefaultPairStrategy,
		PanelGrouping:        c.DefaultPanelGrouping,
		DoorGrouping:         c.DefaultDoorGrouping,
		StudHeightThreshold:  c.DefaultStudHeightThreshold,
		SameFloorTolerance:   c.DefaultSameFloorTolerance,
		EdgeTolerance:        c.DefaultEdgeTolerance,
		ClassifyWindowFloors: c.DefaultClassifyWindowFloors,
		DoorWeight:           c.DefaultDoorWeight,
		WindowWeight:         c.DefaultWindowWeight,
		PanelWeight:          c.DefaultPanelWeight,
		InteriorThreshold:    c.DefaultInteriorThreshold,
	}
}

// AddRecentRun records a run directory at the front of the recent list,
// removing duplicates and capping the list at 10 entries.
func (c *AppConfig) AddRecentRun(path string) {
	recent := []string{path}
	for _, p := range c.RecentRuns {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	c.RecentRuns = recent
}
