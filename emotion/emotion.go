// Package emotion turns a speech waveform into a time-ordered emotional
// narrative: the waveform is cut into overlapping chunks, each chunk is
// screened by cheap acoustic heuristics, classified several times by an
// external capability with the outcomes reduced by majority vote, and the
// per-chunk results are merged into maximal same-label phases with an
// overall label-duration distribution.
package emotion

import "context"

// Prediction is the outcome of a single classifier run on one chunk.
type Prediction struct {
	Label      string
	Confidence float64 // in [0, 1]
}

// Classifier is the external emotion classification capability. A single
// call may be non-deterministic across repeated invocations on identical
// input; the voter exploits that by running it several times per chunk.
// Implementations must be safe for concurrent use if callers analyze
// multiple recordings concurrently.
type Classifier interface {
	Predict(ctx context.Context, samples []float64, sampleRate int) (Prediction, error)
}

// ChunkResult is the voted outcome for one chunk that passed the validity
// gate and received at least one successful classifier run. Chunks with no
// usable votes produce no ChunkResult at all.
type ChunkResult struct {
	Label      string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
}

// Phase is a maximal run of consecutive ChunkResults sharing one label.
// Adjacency is positional in the result sequence; elapsed time between
// results plays no part in merging.
type Phase struct {
	Label       string    `json:"emotion"`
	Start       float64   `json:"start"`
	End         float64   `json:"end"`
	Confidences []float64 `json:"confidences"`
}

// Summary is the final product of one analysis: the phase sequence, the
// per-label share of analyzed time in seconds, the overall analyzed span,
// and the mean ensemble confidence across all chunk results.
type Summary struct {
	Phases        []Phase            `json:"phases"`
	Distribution  map[string]float64 `json:"distribution"`
	TotalDuration float64            `json:"total_duration"`
	AvgConfidence float64            `json:"avg_confidence"`
}
