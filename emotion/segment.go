package emotion

import "math"

// Chunk is a fixed-length window of a waveform. Samples always holds
// exactly the chunk size; when the source ran out it is right-padded with
// zeros and Span records the un-padded length. Start and End are the
// window's offsets in seconds over the un-padded span.
type Chunk struct {
	Samples []float64
	Span    int
	Start   float64
	End     float64
}

// Raw returns the un-padded portion of the chunk.
func (c Chunk) Raw() []float64 { return c.Samples[:c.Span] }

// Segment cuts samples into overlapping windows of chunkDur seconds,
// stepping by chunkDur-overlapDur. A window shorter than a third of the
// chunk size ends segmentation: it is dropped, not padded. Windows at or
// above that floor but short of the full size are zero-padded on the
// right. Waveforms shorter than a third of the chunk size yield no
// windows at all.
func Segment(samples []float64, sampleRate int, chunkDur, overlapDur float64) []Chunk {
	chunkSize := int(math.Round(chunkDur * float64(sampleRate)))
	overlapSize := int(math.Round(overlapDur * float64(sampleRate)))
	step := chunkSize - overlapSize
	if chunkSize <= 0 || step <= 0 {
		return nil
	}
	if len(samples) < chunkSize/3 {
		return nil
	}

	// A waveform above the floor but shorter than one chunk still
	// yields a single padded window.
	n := int(math.Ceil(float64(len(samples)-chunkSize)/float64(step))) + 1
	if n < 1 {
		n = 1
	}

	var chunks []Chunk
	for i := 0; i < n; i++ {
		start := i * step
		end := start + chunkSize
		if end > len(samples) {
			end = len(samples)
		}
		span := end - start
		if span < chunkSize/3 {
			break
		}

		window := make([]float64, chunkSize)
		copy(window, samples[start:end])

		chunks = append(chunks, Chunk{
			Samples: window,
			Span:    span,
			Start:   float64(start) / float64(sampleRate),
			End:     float64(end) / float64(sampleRate),
		})
	}
	return chunks
}
