package importer

import (
	"path/filepath"
	"testing"
)

func TestChainPlanSegments_ClosedRectangle(t *testing.T) {
	segs := []planSegment{
		{start: point2D{0, 0}, end: point2D{1000, 0}},
		{start: point2D{1000, 0}, end: point2D{1000, 200}},
		{start: point2D{1000, 200}, end: point2D{0, 200}},
		{start: point2D{0, 200}, end: point2D{0, 0}},
	}

	outlines := chainPlanSegments(segs, 0.01)
	if len(outlines) != 1 {
		t.Fatalf("expected 1 outline, got %d", len(outlines))
	}
	if len(outlines[0]) != 4 {
		t.Errorf("expected 4 corners after closing, got %d", len(outlines[0]))
	}
}

func TestChainPlanSegments_ReversedSegment(t *testing.T) {
	// Second segment drawn backwards: the chainer must flip it.
	segs := []planSegment{
		{start: point2D{0, 0}, end: point2D{1000, 0}},
		{start: point2D{1000, 200}, end: point2D{1000, 0}},
		{start: point2D{1000, 200}, end: point2D{0, 200}},
		{start: point2D{0, 200}, end: point2D{0, 0}},
	}

	outlines := chainPlanSegments(segs, 0.01)
	if len(outlines) != 1 {
		t.Fatalf("expected 1 outline, got %d", len(outlines))
	}
}

func TestChainPlanSegments_OpenChainDiscarded(t *testing.T) {
	segs := []planSegment{
		{start: point2D{0, 0}, end: point2D{1000, 0}},
		{start: point2D{1000, 0}, end: point2D{1000, 200}},
	}

	outlines := chainPlanSegments(segs, 0.01)
	// An open two-segment chain still yields 3 points; it is kept as an
	// outline and its bounding box is what panel import uses.
	if len(outlines) != 1 {
		t.Fatalf("expected 1 chain, got %d", len(outlines))
	}
	if len(outlines[0]) != 3 {
		t.Errorf("expected 3 points, got %d", len(outlines[0]))
	}
}

func TestImportPanelPlan_MissingFile(t *testing.T) {
	_, _, err := ImportPanelPlan(filepath.Join(t.TempDir(), "nope.dxf"), 0, 3000, 1)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
