// v0
// internal/score/points.go
package score

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain reports arguments outside a formula's domain.
var ErrDomain = errors.New("score: argument out of domain")

// MonthlyTopN is the number of placements per level that earn monthly points.
const MonthlyTopN = 25

// PointsForRank returns the speedrun points earned by rank r (1-based) on a
// level with n competitors: n^(1/6) * 100 / sqrt(r).
func PointsForRank(n, r int) (float64, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: competitors %d < 1", ErrDomain, n)
	}
	if r < 1 {
		return 0, fmt.Errorf("%w: rank %d < 1", ErrDomain, r)
	}
	return math.Pow(float64(n), 1.0/6.0) * 100 / math.Sqrt(float64(r)), nil
}

// PositionPoints returns the monthly points for a placement between 1 and
// MonthlyTopN.
func PositionPoints(rank int) (int, error) {
	idx := rank - 1
	switch {
	case rank < 1 || rank > MonthlyTopN:
		return 0, fmt.Errorf("%w: position %d outside 1..%d", ErrDomain, rank, MonthlyTopN)
	case rank <= 3:
		return 2500 - idx*250, nil
	case rank <= 10:
		return 2125 - idx*125, nil
	default:
		return 1450 - idx*50, nil
	}
}
