package projector

// Waterfall decides the sponsor's share of the profit realized at exit.
// FlatPromote is the only implementation; a tiered preferred-return waterfall
// would plug in here.
type Waterfall interface {
	// Promote returns the amount paid to the sponsor out of the whole-period profit
	Promote(totalProfit float64) float64
}

// FlatPromote pays the sponsor a flat percentage of positive total profit
type FlatPromote struct {
	Percent float64
}

// Promote implements Waterfall
func (f FlatPromote) Promote(totalProfit float64) float64 {
	if totalProfit <= 0 {
		return 0
	}
	return totalProfit * f.Percent / 100
}
