package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

func panelAtZ(id int, zmin, zmax float64) model.Element {
	return panel(id, 0, 0, zmin, 1000, 200, zmax)
}

func TestComputeFloorSplit_OddCount(t *testing.T) {
	panels := []model.Element{
		panelAtZ(1, 0, 2800),
		panelAtZ(2, 3000, 5800),
		panelAtZ(3, 0, 2800),
	}

	split, err := ComputeFloorSplit(panels, model.FloorStatBottom)
	require.NoError(t, err)
	assert.Equal(t, 0.0, split, "median of {0, 0, 3000}")
}

func TestComputeFloorSplit_EvenCountUsesUpperMiddle(t *testing.T) {
	panels := []model.Element{
		panelAtZ(1, 0, 2800),
		panelAtZ(2, 0, 2800),
		panelAtZ(3, 3000, 5800),
		panelAtZ(4, 3000, 5800),
	}

	split, err := ComputeFloorSplit(panels, model.FloorStatBottom)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, split, "even count takes index len/2 of the sorted values")
}

func TestComputeFloorSplit_WithinObservedRange(t *testing.T) {
	panels := []model.Element{
		panelAtZ(1, 100, 2800),
		panelAtZ(2, 500, 2800),
		panelAtZ(3, 3000, 5800),
		panelAtZ(4, 3100, 5800),
		panelAtZ(5, 2900, 5800),
	}

	split, err := ComputeFloorSplit(panels, model.FloorStatBottom)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, split, 100.0)
	assert.LessOrEqual(t, split, 3100.0)
}

func TestComputeFloorSplit_CenterStatistic(t *testing.T) {
	panels := []model.Element{
		panelAtZ(1, 0, 2800),
		panelAtZ(2, 3000, 5800),
		panelAtZ(3, 3000, 5800),
	}

	split, err := ComputeFloorSplit(panels, model.FloorStatCenter)
	require.NoError(t, err)
	assert.Equal(t, 4400.0, split, "median of the Z midpoints {1400, 4400, 4400}")
}

func TestComputeFloorSplit_NoData(t *testing.T) {
	_, err := ComputeFloorSplit(nil, model.FloorStatBottom)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = ComputeFloorSplit([]model.Element{{ID: 1}}, model.FloorStatBottom)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestClassifyFloor_StrictlyBelowIsFloor1(t *testing.T) {
	split := 3000.0

	below := model.BBox{ZMin: 0, ZMax: 2800}
	at := model.BBox{ZMin: 3000, ZMax: 5800}
	above := model.BBox{ZMin: 3200, ZMax: 5800}

	assert.Equal(t, model.Floor1, ClassifyFloor(below, split, model.FloorStatBottom))
	assert.Equal(t, model.Floor2, ClassifyFloor(at, split, model.FloorStatBottom), "exactly at the split is floor 2")
	assert.Equal(t, model.Floor2, ClassifyFloor(above, split, model.FloorStatBottom))
}
