package audio

import "math"

const (
	trimWin = 2048 // silence-trim analysis window, in samples
	trimHop = 512

	// trimRelDB is how far below the loudest frame a frame may sit
	// before it counts as silence.
	trimRelDB = 20.0
)

// Normalize scales samples so the peak absolute amplitude is 1.
// All-zero input is returned unchanged.
func Normalize(samples []float64) []float64 {
	var peak float64
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return samples
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s / peak
	}
	return out
}

// TrimSilence cuts leading and trailing frames whose RMS falls more than
// trimRelDB below the loudest frame. Returns an empty slice when every
// frame is below the threshold.
func TrimSilence(samples []float64) []float64 {
	n := len(samples)
	if n == 0 {
		return samples
	}

	type frame struct{ start, end int }
	var frames []frame
	var rms []float64
	for i := 0; i < n; i += trimHop {
		end := i + trimWin
		if end > n {
			end = n
		}
		frames = append(frames, frame{i, end})
		rms = append(rms, frameRMS(samples[i:end]))
		if end == n {
			break
		}
	}

	var peak float64
	for _, r := range rms {
		if r > peak {
			peak = r
		}
	}
	if peak == 0 {
		return samples[:0]
	}
	thresh := peak * math.Pow(10, -trimRelDB/20)

	first, last := -1, -1
	for i, r := range rms {
		if r > thresh {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return samples[:0]
	}
	return samples[frames[first].start:frames[last].end]
}

func frameRMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, s := range x {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(x)))
}
