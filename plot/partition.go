// Package plot turns selection state into scatter charts.
package plot

import "yashubustudio/chanpick/chanpick"

// Point is one scatter marker in data coordinates.
type Point struct {
	X float64
	Y float64
}

// Groups holds the four disjoint display groups of a single-iteration chart.
type Groups struct {
	Available []Point
	InKey     []Point
	Excluded  []Point
	Selected  []Point
}

// Len returns the total number of points across all groups.
func (g Groups) Len() int {
	return len(g.Available) + len(g.InKey) + len(g.Excluded) + len(g.Selected)
}

// Partition assigns every table row to exactly one group by its identifier.
// An identifier in several sets goes to the first of selected, key, excluded.
// The selected group holds the single selected point rather than its table rows.
func Partition(rows []chanpick.Row, key chanpick.Key, exclusions []float64, sel *chanpick.Selection) Groups {
	excluded := make(map[float64]struct{}, len(exclusions))
	for _, id := range exclusions {
		excluded[id] = struct{}{}
	}
	var g Groups
	for _, r := range rows {
		p := Point{X: r.ID, Y: r.Score}
		switch {
		case sel != nil && r.ID == sel.ID:
			continue
		case key.Contains(r.ID):
			g.InKey = append(g.InKey, p)
		case isMember(excluded, r.ID):
			g.Excluded = append(g.Excluded, p)
		default:
			g.Available = append(g.Available, p)
		}
	}
	if sel != nil {
		g.Selected = []Point{{X: sel.ID, Y: sel.Score}}
	}
	return g
}

func isMember(set map[float64]struct{}, id float64) bool {
	_, ok := set[id]
	return ok
}
