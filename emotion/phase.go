package emotion

// Aggregate merges chunk results, already ordered by start time, into
// maximal same-label phases and computes the overall summary. Returns nil
// for empty input; the caller decides how to represent "no speech".
func Aggregate(results []ChunkResult) *Summary {
	if len(results) == 0 {
		return nil
	}

	var phases []Phase
	var confSum float64
	for _, r := range results {
		confSum += r.Confidence
		if len(phases) == 0 || phases[len(phases)-1].Label != r.Label {
			phases = append(phases, Phase{
				Label:       r.Label,
				Start:       r.Start,
				End:         r.End,
				Confidences: []float64{r.Confidence},
			})
			continue
		}
		p := &phases[len(phases)-1]
		p.End = r.End
		p.Confidences = append(p.Confidences, r.Confidence)
	}

	dist := make(map[string]float64, len(phases))
	for _, p := range phases {
		dist[p.Label] += p.End - p.Start
	}

	return &Summary{
		Phases:        phases,
		Distribution:  dist,
		TotalDuration: results[len(results)-1].End - results[0].Start,
		AvgConfidence: confSum / float64(len(results)),
	}
}
