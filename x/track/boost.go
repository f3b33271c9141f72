package track

import "github.com/iov-one/royalty"

const secondsPerDay = 86400

// boostTiers is ordered by descending threshold. The first tier whose
// threshold is reached wins.
var boostTiers = []struct {
	streamsPerDay uint64
	boost         uint64
}{
	{100000, 12000},
	{50000, 11000},
	{10000, 10500},
}

// PerformanceBoost returns the revenue multiplier, in basis points, for a
// track with given total streams. The rate is the lifetime average of
// daily streams. A track younger than one day uses its total.
func PerformanceBoost(totalStreams uint64, created, now royalty.UnixTime) uint64 {
	var days uint64
	if elapsed := now.Sub(created); elapsed > 0 {
		days = uint64(elapsed) / secondsPerDay
	}
	perDay := totalStreams
	if days > 0 {
		perDay = totalStreams / days
	}
	for _, t := range boostTiers {
		if perDay >= t.streamsPerDay {
			return t.boost
		}
	}
	return BasisPoints
}
