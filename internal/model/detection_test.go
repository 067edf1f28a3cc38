package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetection_UnmarshalNumericID(t *testing.T) {
	data := `{"id": 0, "label": "window", "floor": 2, "center_xy_norm": [0.52, 0.31]}`

	var d Detection
	require.NoError(t, json.Unmarshal([]byte(data), &d))

	assert.Equal(t, "0", d.ID)
	assert.Equal(t, "window", d.Label)
	assert.Equal(t, Floor2, d.Floor)
	assert.Equal(t, 0.52, d.XNorm)
	require.NotNil(t, d.YNorm)
	assert.Equal(t, 0.31, *d.YNorm)
}

func TestDetection_UnmarshalStringID(t *testing.T) {
	data := `{"id": "det-7", "label": "door", "floor": 1, "center_xy_norm": [0.25]}`

	var d Detection
	require.NoError(t, json.Unmarshal([]byte(data), &d))

	assert.Equal(t, "det-7", d.ID)
	assert.Equal(t, 0.25, d.XNorm)
	assert.Nil(t, d.YNorm, "single-coordinate center leaves Y unset")
}

func TestDetection_UnmarshalMissingCenter(t *testing.T) {
	data := `{"id": 1, "label": "door", "floor": 1}`

	var d Detection
	err := json.Unmarshal([]byte(data), &d)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "center_xy_norm")
}

func TestDetection_MarshalRoundTrip(t *testing.T) {
	y := 0.4
	d := Detection{ID: "3", Label: "window", Floor: Floor1, XNorm: 0.6, YNorm: &y}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"3","label":"window","floor":1,"center_xy_norm":[0.6,0.4]}`, string(data))

	var back Detection
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestDetection_UnmarshalArray(t *testing.T) {
	data := `[
		{"id": 0, "label": "door", "floor": 1, "center_xy_norm": [0.2, 0.8]},
		{"id": 1, "label": "window", "floor": 2, "center_xy_norm": [0.7, 0.3]}
	]`

	var ds []Detection
	require.NoError(t, json.Unmarshal([]byte(data), &ds))
	require.Len(t, ds, 2)
	assert.Equal(t, "0", ds[0].ID)
	assert.Equal(t, "1", ds[1].ID)
}
