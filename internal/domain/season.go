package domain

import "math"

// Season is the Martian season derived from solar longitude.
type Season string

const (
	SeasonSpring  Season = "Spring"
	SeasonSummer  Season = "Summer"
	SeasonAutumn  Season = "Autumn"
	SeasonWinter  Season = "Winter"
	SeasonUnknown Season = "Unknown"
)

// SeasonOrder is the fixed display order for seasonal views. The aggregator
// itself makes no ordering promise; consumers that need a stable axis sort
// against this.
var SeasonOrder = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter, SeasonUnknown}

// ClassifySeason maps a solar longitude to a Martian season over half-open
// 90-degree intervals: [0,90) Spring, [90,180) Summer, [180,270) Autumn,
// [270,360) Winter. Lower bounds are inclusive, upper bounds exclusive, so
// ls=90 is Summer and ls=360 is Unknown.
//
// The function is total: negative, >=360, and non-finite inputs all classify
// as Unknown. No modular wraparound is applied; out-of-range values usually
// mean an upstream measurement artifact and are surfaced as Unknown rather
// than silently wrapped.
func ClassifySeason(ls float64) Season {
	if math.IsNaN(ls) || math.IsInf(ls, 0) {
		return SeasonUnknown
	}
	switch {
	case ls >= 0 && ls < 90:
		return SeasonSpring
	case ls >= 90 && ls < 180:
		return SeasonSummer
	case ls >= 180 && ls < 270:
		return SeasonAutumn
	case ls >= 270 && ls < 360:
		return SeasonWinter
	default:
		return SeasonUnknown
	}
}
