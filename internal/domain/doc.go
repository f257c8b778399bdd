// Package domain models Curiosity rover Mars weather observations.
//
// # Data Source
//
// Observations originate from the Rover Environmental Monitoring Station
// (REMS) aboard the Curiosity rover, distributed as a daily CSV export with
// one row per sol. The export's schema has drifted over the years, so the
// loader normalizes headers (trim, lowercase) and renames legacy columns
// before any lookup. Known aliases:
//
//	atmo_opacity → atmospheric_opacity
//
// # Column Conventions
//
// terrestrial_date:
//
//	The Earth calendar date of the observation, timezone-naive. Usually
//	"2018-02-27"; older extracts include a time component or US-style
//	slashes. A date that fails to parse is treated as missing, which drops
//	the row — never as a load failure.
//
// min_temp / max_temp:
//
//	Ground temperature extremes in °C. May be any real value; Gale Crater
//	nights regularly reach -80.
//
// pressure:
//
//	Atmospheric pressure in Pa, typically 700-950 at the crater floor.
//
// ls (solar longitude):
//
//	Mars's position in its orbit in degrees, canonically [0, 360). Drives
//	the season classification:
//
//	  [0, 90)    Spring
//	  [90, 180)  Summer
//	  [180, 270) Autumn
//	  [270, 360) Winter
//	  otherwise  Unknown
//
//	Lower bounds inclusive, upper exclusive: ls=90 is Summer and ls=360 is
//	Unknown. Out-of-range values are not wrapped — they usually indicate an
//	upstream artifact and Unknown keeps them visible. See [ClassifySeason].
//
// atmospheric_opacity:
//
//	Optional categorical sky condition ("Sunny" for nearly every sol).
//	Whole extracts may lack the column; that absence is a schema fact, not
//	a missing value, and is carried on [Dataset.HasOpacity].
//
// # Missing-Data Policy
//
// A row survives cleaning only if terrestrial_date parses and min_temp,
// max_temp, pressure, and ls are all present and numeric. The filter is
// conjunctive with no partial-record accommodation; a dataset with a few
// corrupt rows still produces results from the rest. See [BuildObservation].
package domain
