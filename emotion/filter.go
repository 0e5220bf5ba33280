package emotion

import "math"

// Validity gate thresholds. A chunk outside these bounds is unlikely to
// contain usable speech, so the expensive classifier is never invoked.
const (
	gateMinRMS        = 0.005 // below this the chunk is near-silence
	gateMaxZCR        = 0.4   // above this the chunk is noise-like
	gateMinCentroidHz = 300.0 // voiced speech spectral envelope
	gateMaxCentroidHz = 8000.0

	centroidFFTSize = 2048
	centroidHop     = 512
)

// Gate reports whether a chunk looks enough like speech to be worth
// classifying. All checks run on the raw, un-padded samples. Features
// that cannot be computed for the given chunk skip their rule rather
// than failing it, so the gate under-rejects on degenerate input.
func Gate(c Chunk, sampleRate int) bool {
	raw := c.Raw()
	if len(raw) == 0 {
		return false
	}
	if rms(raw) < gateMinRMS {
		return false
	}
	if z, ok := zeroCrossingRate(raw); ok && z > gateMaxZCR {
		return false
	}
	if sc, ok := spectralCentroid(raw, sampleRate); ok && (sc < gateMinCentroidHz || sc > gateMaxCentroidHz) {
		return false
	}
	return true
}

func rms(x []float64) float64 {
	var sum float64
	for _, s := range x {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(x)))
}

// zeroCrossingRate is the fraction of adjacent sample pairs that change
// sign. Needs at least two samples.
func zeroCrossingRate(x []float64) (float64, bool) {
	if len(x) < 2 {
		return 0, false
	}
	crossings := 0
	for i := 1; i < len(x); i++ {
		if (x[i-1] < 0) != (x[i] < 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(x)-1), true
}

// spectralCentroid is the magnitude-weighted mean frequency in Hz,
// averaged over Hann-windowed frames of centroidFFTSize samples. Chunks
// shorter than one frame, or with no spectral energy, report the feature
// as unavailable.
func spectralCentroid(x []float64, sampleRate int) (float64, bool) {
	if len(x) < centroidFFTSize || sampleRate <= 0 {
		return 0, false
	}

	half := centroidFFTSize/2 + 1
	binHz := float64(sampleRate) / float64(centroidFFTSize)

	re := make([]float64, centroidFFTSize)
	im := make([]float64, centroidFFTSize)

	var centroidSum float64
	frames := 0
	for start := 0; start+centroidFFTSize <= len(x); start += centroidHop {
		for i := 0; i < centroidFFTSize; i++ {
			w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(centroidFFTSize-1))
			re[i] = x[start+i] * w
			im[i] = 0
		}
		fft(re, im)

		var magSum, weighted float64
		for k := 0; k < half; k++ {
			mag := math.Hypot(re[k], im[k])
			magSum += mag
			weighted += mag * float64(k) * binHz
		}
		if magSum == 0 {
			continue
		}
		centroidSum += weighted / magSum
		frames++
	}
	if frames == 0 {
		return 0, false
	}
	return centroidSum / float64(frames), true
}
