package emotion

import (
	"math"
	"testing"
)

func sine(freq float64, rate, n int, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return out
}

func chunkOf(samples []float64) Chunk {
	return Chunk{Samples: samples, Span: len(samples), End: float64(len(samples))}
}

func TestGate(t *testing.T) {
	rate := 16000

	alternating := make([]float64, rate)
	for i := range alternating {
		if i%2 == 0 {
			alternating[i] = 0.5
		} else {
			alternating[i] = -0.5
		}
	}

	dc := make([]float64, centroidFFTSize)
	for i := range dc {
		dc[i] = 0.5
	}

	tests := []struct {
		name    string
		samples []float64
		want    bool
	}{
		{"voiced tone", sine(440, rate, rate, 0.5), true},
		{"near silence", make([]float64, rate), false},
		{"empty", nil, false},
		{"noise-like sign flips", alternating, false},
		{"dc offset, centroid too low", dc, false},
		// Too short for ZCR and centroid: those rules skip, RMS decides.
		{"single loud sample", []float64{0.5}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Gate(chunkOf(tc.samples), rate); got != tc.want {
				t.Fatalf("Gate=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestGateIgnoresPadding(t *testing.T) {
	// A padded chunk whose raw span is loud must pass even though the
	// padded average would drag the RMS down.
	raw := sine(440, 16000, 8000, 0.5)
	padded := make([]float64, 16000)
	copy(padded, raw)

	c := Chunk{Samples: padded, Span: len(raw)}
	if !Gate(c, 16000) {
		t.Fatal("padded voiced chunk rejected")
	}
}

func TestZeroCrossingRate(t *testing.T) {
	if _, ok := zeroCrossingRate([]float64{1}); ok {
		t.Fatal("single sample should report ZCR unavailable")
	}

	z, ok := zeroCrossingRate([]float64{1, -1, 1, -1, 1})
	if !ok || !almostEqual(z, 1) {
		t.Fatalf("got %g ok=%v, want 1 true", z, ok)
	}

	z, ok = zeroCrossingRate([]float64{1, 1, -1, 1, 1})
	if !ok || !almostEqual(z, 0.5) {
		t.Fatalf("got %g ok=%v, want 0.5 true", z, ok)
	}
}

func TestSpectralCentroidTone(t *testing.T) {
	sc, ok := spectralCentroid(sine(440, 16000, 16000, 0.5), 16000)
	if !ok {
		t.Fatal("centroid unavailable for a full-length tone")
	}
	if sc < 350 || sc > 550 {
		t.Fatalf("centroid of a 440 Hz tone = %g, want near 440", sc)
	}
}

func TestSpectralCentroidUnavailable(t *testing.T) {
	if _, ok := spectralCentroid(make([]float64, centroidFFTSize-1), 16000); ok {
		t.Fatal("sub-frame input should report centroid unavailable")
	}
	if _, ok := spectralCentroid(make([]float64, centroidFFTSize), 16000); ok {
		t.Fatal("zero-energy input should report centroid unavailable")
	}
}
