package emotion

import "context"

// Vote drives the classifier runs times over one chunk and reduces the
// outcomes to a single prediction. Chunks rejected by the validity gate
// short-circuit without touching the classifier. Runs that fail or return
// an empty label are dropped from the tally; if no run survives, ok is
// false and the chunk yields no result.
//
// The winning label is the one with the most surviving votes. Ties go to
// the label whose first vote has the lowest run index, which keeps the
// outcome deterministic for a fixed run order. The returned confidence is
// the vote ratio multiplied by the mean confidence of the winning votes,
// so a split ensemble reports lower confidence than a unanimous one even
// at identical per-run confidences.
func Vote(ctx context.Context, clf Classifier, c Chunk, sampleRate, runs int) (Prediction, bool) {
	if !Gate(c, sampleRate) {
		return Prediction{}, false
	}

	type tally struct {
		label   string
		count   int
		confSum float64
	}
	var tallies []tally

	total := 0
	for i := 0; i < runs; i++ {
		p, err := clf.Predict(ctx, c.Samples, sampleRate)
		if err != nil || p.Label == "" {
			continue
		}
		total++
		found := false
		for j := range tallies {
			if tallies[j].label == p.Label {
				tallies[j].count++
				tallies[j].confSum += p.Confidence
				found = true
				break
			}
		}
		if !found {
			tallies = append(tallies, tally{label: p.Label, count: 1, confSum: p.Confidence})
		}
	}
	if total == 0 {
		return Prediction{}, false
	}

	// tallies is in first-vote order, so strict comparison resolves
	// ties in favor of the earliest run.
	best := 0
	for j := 1; j < len(tallies); j++ {
		if tallies[j].count > tallies[best].count {
			best = j
		}
	}

	w := tallies[best]
	voteRatio := float64(w.count) / float64(total)
	meanConf := w.confSum / float64(w.count)
	return Prediction{Label: w.label, Confidence: voteRatio * meanConf}, true
}
