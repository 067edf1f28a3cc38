package model

// Side identifies one exterior face of the building as seen in plan view.
type Side string

const (
	SideA Side = "A" // min-X edge (left)
	SideB Side = "B" // min-Y edge (bottom)
	SideC Side = "C" // max-X edge (right)
	SideD Side = "D" // max-Y edge (top)

	// SideInterior is the sentinel for points beyond the edge tolerance and
	// for detection batches that cannot be attributed to any exterior side.
	SideInterior Side = "INTERIOR"
)

// Sides returns the four facade sides in their fixed priority order.
// The order doubles as the tie-break order for side classification:
// A, C, B, D (left, right, bottom, top).
func Sides() []Side {
	return []Side{SideA, SideC, SideB, SideD}
}

// Exterior reports whether the side is one of the four facade sides.
func (s Side) Exterior() bool {
	switch s {
	case SideA, SideB, SideC, SideD:
		return true
	}
	return false
}

// Floor identifies the story an element belongs to.
type Floor int

const (
	FloorUnknown Floor = 0
	Floor1       Floor = 1
	Floor2       Floor = 2
)

// ElementType is the canonical object category shared by the 3D model and
// the image detector. The string values are the keys existing JSON
// consumers expect.
type ElementType string

const (
	TypePanel  ElementType = "wall-panels"
	TypeDoor   ElementType = "door"
	TypeWindow ElementType = "window"
)

// labelAliases maps detector labels to canonical element types. The image
// detector and the BIM export never agreed on spelling, so both singular
// and plural forms plus underscore variants are accepted.
var labelAliases = map[string]ElementType{
	"door":        TypeDoor,
	"doors":       TypeDoor,
	"window":      TypeWindow,
	"windows":     TypeWindow,
	"wall-panels": TypePanel,
	"wall_panels": TypePanel,
	"panel":       TypePanel,
	"panels":      TypePanel,
}

// CanonicalType resolves a detector label to its element type.
// Returns false for labels outside the known vocabulary.
func CanonicalType(label string) (ElementType, bool) {
	t, ok := labelAliases[label]
	return t, ok
}

// BBox is an axis-aligned bounding box in millimeters.
type BBox struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`
	ZMin float64 `json:"zmin"`
	ZMax float64 `json:"zmax"`
}

// Width returns the X extent in mm.
func (b BBox) Width() float64 { return b.XMax - b.XMin }

// Depth returns the Y extent in mm.
func (b BBox) Depth() float64 { return b.YMax - b.YMin }

// Height returns the Z extent in mm.
func (b BBox) Height() float64 { return b.ZMax - b.ZMin }

// CenterX returns the X midpoint.
func (b BBox) CenterX() float64 { return (b.XMin + b.XMax) / 2 }

// CenterY returns the Y midpoint.
func (b BBox) CenterY() float64 { return (b.YMin + b.YMax) / 2 }

// CenterZ returns the Z midpoint.
func (b BBox) CenterZ() float64 { return (b.ZMin + b.ZMax) / 2 }

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	u := b
	if o.XMin < u.XMin {
		u.XMin = o.XMin
	}
	if o.XMax > u.XMax {
		u.XMax = o.XMax
	}
	if o.YMin < u.YMin {
		u.YMin = o.YMin
	}
	if o.YMax > u.YMax {
		u.YMax = o.YMax
	}
	if o.ZMin < u.ZMin {
		u.ZMin = o.ZMin
	}
	if o.ZMax > u.ZMax {
		u.ZMax = o.ZMax
	}
	return u
}

// Element is a 3D model element borrowed from the host application.
// BBox is nil when the host could not produce a bounding box for it;
// such elements are skipped with a warning, never estimated.
type Element struct {
	ID   int   `json:"id"`
	BBox *BBox `json:"bbox,omitempty"`
}

// FacadeBounds is the rectangular building footprint derived from panels.
type FacadeBounds struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`
}

// DoorOpening is the logical grouping of two studs and, when one could be
// matched, a header. Header is nil when the header pool was exhausted.
// An opening composed from a single raw door element carries that element
// as StudLeft with a zero StudRight. Immutable after creation.
type DoorOpening struct {
	ID        int      `json:"id"`
	StudLeft  Element  `json:"stud_left"`
	StudRight Element  `json:"stud_right"`
	Header    *Element `json:"header,omitempty"`
	WidthMM   float64  `json:"width_mm"`
	HeightMM  float64  `json:"height_mm"`
	CenterX   float64  `json:"center_x"`
	CenterY   float64  `json:"center_y"`
}

// Bounds returns the union box over the opening's framing members.
func (d DoorOpening) Bounds() BBox {
	b := *d.StudLeft.BBox
	if d.StudRight.BBox != nil {
		b = b.Union(*d.StudRight.BBox)
	}
	if d.Header != nil && d.Header.BBox != nil {
		b = b.Union(*d.Header.BBox)
	}
	return b
}

// SideObjects holds the element and opening IDs assigned to one side,
// partitioned by floor where applicable.
type SideObjects struct {
	Panels       []int `json:"panels"`
	PanelsFloor1 []int `json:"panels_floor1"`
	PanelsFloor2 []int `json:"panels_floor2"`
	Windows      []int `json:"windows"`
	Doors        []int `json:"doors"`
}

// SideSummary maps each facade side to its member objects.
type SideSummary map[Side]*SideObjects

// NewSideSummary returns a summary with an empty record per side.
func NewSideSummary() SideSummary {
	s := make(SideSummary, 4)
	for _, side := range Sides() {
		s[side] = &SideObjects{}
	}
	return s
}

// NormalizedElement is a facade object with its horizontal position
// expressed as a fraction of its side's own extent. Rebuilt every run.
// Field names match the JSON the original consumers read.
type NormalizedElement struct {
	ID          int         `json:"id"`
	Type        ElementType `json:"type"`
	Side        Side        `json:"side"`
	Floor       Floor       `json:"floor"`
	XMin        float64     `json:"xmin"`
	XMax        float64     `json:"xmax"`
	SideWidthMM float64     `json:"side_width_mm"`
	CenterNorm  float64     `json:"center_norm"`
	Tag         int         `json:"tag"` // 1..N per side, in position order
}

// MatchRecord is the outcome for one detection: either the nearest
// element of the same type/side/floor, or an explanation why none was
// found. One record is produced per detection, unconditionally.
type MatchRecord struct {
	YoloID   string   `json:"yolo_id"`
	Label    string   `json:"label"`
	BimID    *int     `json:"bim_id"`
	BimTag   *int     `json:"bim_tag"`
	Distance *float64 `json:"distance,omitempty"`
	Note     string   `json:"note,omitempty"`
}

// Matched reports whether the record carries an element assignment.
func (m MatchRecord) Matched() bool { return m.BimID != nil }
