package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/FacadeMatch/internal/model"
)

// framingMember is a door-family element with its resolved box.
type framingMember struct {
	elem model.Element
	box  model.BBox
}

// GroupDoorOpenings composes raw door-framing elements into logical
// openings: split into studs and headers by height, pair studs per the
// configured strategy, then greedily assign one header per pair.
// Returns ErrInsufficientStuds when fewer than two studs are found.
// With DoorGrouping GroupNone every raw door element becomes its own
// opening and no pairing or header search takes place.
func (e *Engine) GroupDoorOpenings(doorElems []model.Element, res *Result) ([]model.DoorOpening, error) {
	if e.Settings.DoorGrouping == model.GroupNone {
		return e.openingPerElement(doorElems, res), nil
	}

	studs, headers := e.splitFraming(doorElems, res)

	if len(studs) < 2 {
		return nil, fmt.Errorf("found %d studs among %d door elements: %w",
			len(studs), len(doorElems), ErrInsufficientStuds)
	}
	if len(headers) == 0 {
		res.warnf("no headers found among %d door elements", len(doorElems))
	}

	var pairs [][2]framingMember
	switch e.Settings.PairStrategy {
	case model.PairRows:
		var err error
		pairs, err = pairRows(studs)
		if err != nil {
			return nil, err
		}
	default:
		pairs = pairAdjacent(studs, e.Settings.SameFloorTolerance, res)
	}

	return matchHeaders(pairs, headers, res), nil
}

// openingPerElement makes one opening per raw door element, taking the
// element's own width, height, and plan-view center. The element rides
// as StudLeft; StudRight and Header stay empty.
func (e *Engine) openingPerElement(doorElems []model.Element, res *Result) []model.DoorOpening {
	openings := make([]model.DoorOpening, 0, len(doorElems))
	for _, el := range doorElems {
		if el.BBox == nil {
			res.warnNoBox("door element", el.ID)
			continue
		}
		openings = append(openings, model.DoorOpening{
			ID:       len(openings) + 1,
			StudLeft: el,
			WidthMM:  el.BBox.Width(),
			HeightMM: el.BBox.Height(),
			CenterX:  el.BBox.CenterX(),
			CenterY:  el.BBox.CenterY(),
		})
	}
	return openings
}

// splitFraming separates door-family elements into vertical studs and
// horizontal headers by the configured height threshold. Elements
// without a bounding box are skipped with a warning.
func (e *Engine) splitFraming(doorElems []model.Element, res *Result) (studs, headers []framingMember) {
	for _, el := range doorElems {
		if el.BBox == nil {
			res.warnNoBox("door element", el.ID)
			continue
		}
		m := framingMember{elem: el, box: *el.BBox}
		if m.box.Height() > e.Settings.StudHeightThreshold {
			studs = append(studs, m)
		} else {
			headers = append(headers, m)
		}
	}
	return studs, headers
}

// pairAdjacent sorts studs by vertical center then horizontal center and
// pairs neighbours whose vertical centers fall within the same-floor
// tolerance. A stud with no partner in tolerance is skipped with a
// warning rather than forced into a pair.
func pairAdjacent(studs []framingMember, tolerance float64, res *Result) [][2]framingMember {
	sorted := make([]framingMember, len(studs))
	copy(sorted, studs)
	sort.SliceStable(sorted, func(i, j int) bool {
		zi, zj := sorted[i].box.CenterZ(), sorted[j].box.CenterZ()
		if zi != zj {
			return zi < zj
		}
		return sorted[i].box.CenterX() < sorted[j].box.CenterX()
	})

	var pairs [][2]framingMember
	i := 0
	for i < len(sorted)-1 {
		a, b := sorted[i], sorted[i+1]
		if math.Abs(a.box.CenterZ()-b.box.CenterZ()) < tolerance {
			pairs = append(pairs, orderByX(a, b))
			i += 2
		} else {
			res.warnf("stud %d has no same-floor partner, skipped", a.elem.ID)
			i++
		}
	}
	if i == len(sorted)-1 {
		res.warnf("stud %d has no same-floor partner, skipped", sorted[i].elem.ID)
	}
	return pairs
}

// pairRows implements the strict known-topology strategy: exactly four
// studs split by Z into two rows of two, each row paired by X.
func pairRows(studs []framingMember) ([][2]framingMember, error) {
	if len(studs) != 4 {
		return nil, fmt.Errorf("rows pairing expects exactly 4 studs, found %d", len(studs))
	}
	sorted := make([]framingMember, len(studs))
	copy(sorted, studs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].box.CenterZ() < sorted[j].box.CenterZ()
	})
	return [][2]framingMember{
		orderByX(sorted[0], sorted[1]),
		orderByX(sorted[2], sorted[3]),
	}, nil
}

// orderByX returns the pair with the smaller-X stud on the left.
func orderByX(a, b framingMember) [2]framingMember {
	if a.box.CenterX() <= b.box.CenterX() {
		return [2]framingMember{a, b}
	}
	return [2]framingMember{b, a}
}

// matchHeaders assigns, for each stud pair in pairing order, the unused
// header whose vertical center is closest to the lower of the two stud
// tops. Each header is used at most once; a pair processed after the
// pool runs dry is recorded without a header and warned.
func matchHeaders(pairs [][2]framingMember, headers []framingMember, res *Result) []model.DoorOpening {
	used := make([]bool, len(headers))
	openings := make([]model.DoorOpening, 0, len(pairs))

	for i, pr := range pairs {
		left, right := pr[0], pr[1]
		id := i + 1
		studTopZ := math.Min(left.box.ZMax, right.box.ZMax)

		bestIdx := -1
		bestDiff := math.Inf(1)
		for j := range headers {
			if used[j] {
				continue
			}
			diff := math.Abs(headers[j].box.CenterZ() - studTopZ)
			if diff < bestDiff {
				bestDiff = diff
				bestIdx = j
			}
		}

		width := math.Abs(right.box.CenterX() - left.box.CenterX())
		opening := model.DoorOpening{
			ID:        id,
			StudLeft:  left.elem,
			StudRight: right.elem,
			WidthMM:   width,
			CenterX:   (left.box.CenterX() + right.box.CenterX()) / 2,
			CenterY:   (left.box.CenterY() + right.box.CenterY()) / 2,
		}

		if bestIdx >= 0 {
			used[bestIdx] = true
			h := headers[bestIdx]
			opening.Header = &h.elem
			opening.HeightMM = math.Abs(h.box.ZMin - math.Min(left.box.ZMin, right.box.ZMin))
		} else {
			res.warnf("no header available for opening %d", id)
			opening.HeightMM = math.Max(left.box.Height(), right.box.Height())
		}

		openings = append(openings, opening)
	}
	return openings
}
