package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Detection is one labeled bounding-box detection from the image
// detector, with its center in normalized image coordinates. The core
// reads nothing beyond these fields.
type Detection struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Floor Floor   `json:"floor"`
	XNorm float64 `json:"x_norm"`
	// YNorm is optional; nil when the detector supplied only an X
	// coordinate.
	YNorm *float64 `json:"y_norm,omitempty"`
}

// detectionJSON is the wire shape the detector writes:
// {"id": ..., "label": "...", "floor": 1, "center_xy_norm": [x, y]}.
// IDs appear as both numbers and strings in practice.
type detectionJSON struct {
	ID     json.RawMessage `json:"id"`
	Label  string          `json:"label"`
	Floor  int             `json:"floor"`
	Center []float64       `json:"center_xy_norm"`
}

// UnmarshalJSON accepts the detector's native record shape.
func (d *Detection) UnmarshalJSON(data []byte) error {
	var raw detectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Center) == 0 {
		return fmt.Errorf("detection %s: missing center_xy_norm", raw.ID)
	}

	d.ID = rawID(raw.ID)
	d.Label = raw.Label
	d.Floor = Floor(raw.Floor)
	d.XNorm = raw.Center[0]
	d.YNorm = nil
	if len(raw.Center) > 1 {
		y := raw.Center[1]
		d.YNorm = &y
	}
	return nil
}

// MarshalJSON writes the detector's native record shape back out.
func (d Detection) MarshalJSON() ([]byte, error) {
	center := []float64{d.XNorm}
	if d.YNorm != nil {
		center = append(center, *d.YNorm)
	}
	return json.Marshal(struct {
		ID     string    `json:"id"`
		Label  string    `json:"label"`
		Floor  int       `json:"floor"`
		Center []float64 `json:"center_xy_norm"`
	}{d.ID, d.Label, int(d.Floor), center})
}

// rawID coerces a JSON id value (number or string) to its string form.
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == float64(int64(n)) {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return string(raw)
}
