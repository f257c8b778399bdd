package domain

// AggregateBySeason computes the arithmetic mean of min_temp, max_temp, and
// pressure per season over the whole dataset. Only seasons with at least one
// observation are emitted, in first-seen order; callers needing a fixed
// display order sort against SeasonOrder.
func (d Dataset) AggregateBySeason() []SeasonalAverage {
	type acc struct {
		minTemp  float64
		maxTemp  float64
		pressure float64
		count    int
	}

	sums := make(map[Season]*acc)
	var order []Season

	for _, obs := range d.Observations {
		a, ok := sums[obs.Season]
		if !ok {
			a = &acc{}
			sums[obs.Season] = a
			order = append(order, obs.Season)
		}
		a.minTemp += obs.MinTemp
		a.maxTemp += obs.MaxTemp
		a.pressure += obs.Pressure
		a.count++
	}

	averages := make([]SeasonalAverage, 0, len(order))
	for _, season := range order {
		a := sums[season]
		n := float64(a.count)
		averages = append(averages, SeasonalAverage{
			Season:   season,
			MinTemp:  a.minTemp / n,
			MaxTemp:  a.maxTemp / n,
			Pressure: a.pressure / n,
			Count:    a.count,
		})
	}
	return averages
}

// TallyOpacity counts observations per atmospheric opacity category, in
// first-seen order. The second return is false when the source table never
// had an opacity column; a present-but-empty column yields an empty tally
// with ok=true, so the two shapes stay distinguishable. Observations with an
// empty opacity value are not counted.
func (d Dataset) TallyOpacity() ([]OpacityCount, bool) {
	if !d.HasOpacity {
		return nil, false
	}

	counts := make(map[string]int)
	var order []string
	for _, obs := range d.Observations {
		if obs.Opacity == "" {
			continue
		}
		if _, seen := counts[obs.Opacity]; !seen {
			order = append(order, obs.Opacity)
		}
		counts[obs.Opacity]++
	}

	tally := make([]OpacityCount, 0, len(order))
	for _, opacity := range order {
		tally = append(tally, OpacityCount{Opacity: opacity, Count: counts[opacity]})
	}
	return tally, true
}
