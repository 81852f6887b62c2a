package chanpick

const (
	DefaultTablePath     = "results.csv"
	DefaultExclusionPath = "exclusion_list.json"
	DefaultIterations    = 10
	DefaultScaleFactor   = 100

	// C-band window used by the cumulative chart, in nm.
	DefaultXMin    = 1530
	DefaultXMax    = 1565
	DefaultYMargin = 10
)

// DefaultKey returns the channel group evaluated when none is configured.
func DefaultKey() Key {
	return Key{1530, 1537, 1538}
}

// DefaultExclusions returns the channels treated as already assigned when the
// exclusion file is empty: the neighbours of the default key and the upper band edge.
func DefaultExclusions() []float64 {
	return []float64{
		1531, 1532, 1533, 1534, 1535, 1536,
		1539, 1540, 1541,
		1560, 1561, 1562, 1563, 1564, 1565,
	}
}
