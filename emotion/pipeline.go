package emotion

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/moodline/moodline/audio"
)

// Analyzer runs the full pipeline: normalize, trim silence, segment,
// gate+vote each chunk in order, and aggregate into a Summary. One
// Analyzer may serve concurrent calls as long as its Classifier does.
type Analyzer struct {
	Classifier     Classifier
	ChunkSeconds   float64 // window length, e.g. 1.0
	OverlapSeconds float64 // window overlap, must be < ChunkSeconds
	Runs           int     // classifier runs per chunk
	Log            *logrus.Entry // optional
}

// AnalyzeFile decodes a WAV file and analyzes the resulting waveform.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Summary, error) {
	samples, rate, err := audio.LoadWAV(path)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeWaveform(ctx, samples, rate)
}

// AnalyzeWaveform analyzes already-decoded mono samples at the given
// sample rate. A nil Summary with a nil error means nothing analyzable
// was found: the input was too short, every chunk was rejected by the
// validity gate, or every classifier run failed.
func (a *Analyzer) AnalyzeWaveform(ctx context.Context, samples []float64, sampleRate int) (*Summary, error) {
	if a.Classifier == nil {
		return nil, fmt.Errorf("analyzer: no classifier configured")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("analyzer: invalid sample rate %d", sampleRate)
	}
	step := a.ChunkSeconds - a.OverlapSeconds
	if a.ChunkSeconds <= 0 || step <= 0 {
		return nil, fmt.Errorf("analyzer: chunk %gs with overlap %gs leaves no step", a.ChunkSeconds, a.OverlapSeconds)
	}
	runs := a.Runs
	if runs < 1 {
		runs = 1
	}

	w := audio.TrimSilence(audio.Normalize(samples))

	chunkSize := int(math.Round(a.ChunkSeconds * float64(sampleRate)))
	if len(w) < chunkSize/3 {
		return nil, nil
	}

	chunks := Segment(w, sampleRate, a.ChunkSeconds, a.OverlapSeconds)
	if a.Log != nil {
		a.Log.WithFields(logrus.Fields{
			"duration_s": float64(len(w)) / float64(sampleRate),
			"chunks":     len(chunks),
			"runs":       runs,
		}).Debug("segmented waveform")
	}

	var results []ChunkResult
	for i, c := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, ok := Vote(ctx, a.Classifier, c, sampleRate, runs)
		if !ok {
			continue
		}
		results = append(results, ChunkResult{
			Label:      p.Label,
			Confidence: p.Confidence,
			Start:      c.Start,
			End:        c.End,
		})
		if a.Log != nil {
			a.Log.WithFields(logrus.Fields{
				"chunk":      i,
				"emotion":    p.Label,
				"confidence": p.Confidence,
			}).Debug("chunk voted")
		}
	}

	return Aggregate(results), nil
}
