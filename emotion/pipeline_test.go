package emotion

import (
	"context"
	"math"
	"testing"
)

// fixedClassifier always answers the same prediction and counts calls.
type fixedClassifier struct {
	p     Prediction
	calls int
}

func (f *fixedClassifier) Predict(ctx context.Context, samples []float64, sampleRate int) (Prediction, error) {
	f.calls++
	return f.p, nil
}

// loudnessClassifier labels a chunk by its energy, which makes phase
// boundaries follow the waveform's amplitude.
type loudnessClassifier struct{}

func (loudnessClassifier) Predict(ctx context.Context, samples []float64, sampleRate int) (Prediction, error) {
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	if math.Sqrt(sum/float64(len(samples))) > 0.5 {
		return Prediction{Label: "happy", Confidence: 0.8}, nil
	}
	return Prediction{Label: "sad", Confidence: 0.8}, nil
}

func TestAnalyzeWaveformSingleEmotion(t *testing.T) {
	rate := 16000
	clf := &fixedClassifier{p: Prediction{Label: "calm", Confidence: 0.9}}
	a := &Analyzer{Classifier: clf, ChunkSeconds: 1.0, OverlapSeconds: 0.5, Runs: 5}

	s, err := a.AnalyzeWaveform(context.Background(), sine(440, rate, 3*rate, 0.5), rate)
	if err != nil {
		t.Fatalf("AnalyzeWaveform: %v", err)
	}
	if s == nil {
		t.Fatal("got nil summary for a clean tone")
	}

	if len(s.Phases) != 1 || s.Phases[0].Label != "calm" {
		t.Fatalf("phases=%+v, want one calm phase", s.Phases)
	}
	if !almostEqual(s.Phases[0].Start, 0) || !almostEqual(s.Phases[0].End, 3) {
		t.Fatalf("phase spans [%g, %g], want [0, 3]", s.Phases[0].Start, s.Phases[0].End)
	}
	if !almostEqual(s.Distribution["calm"], 3) {
		t.Fatalf("distribution=%v, want calm 3", s.Distribution)
	}
	if !almostEqual(s.TotalDuration, 3) || !almostEqual(s.AvgConfidence, 0.9) {
		t.Fatalf("total=%g avg=%g, want 3 and 0.9", s.TotalDuration, s.AvgConfidence)
	}
	// 5 full chunks, 5 ensemble runs each.
	if clf.calls != 25 {
		t.Fatalf("classifier called %d times, want 25", clf.calls)
	}
}

func TestAnalyzeWaveformTwoPhases(t *testing.T) {
	rate := 16000
	quiet := sine(440, rate, int(1.5*float64(rate)), 0.4)
	loud := sine(440, rate, int(1.5*float64(rate)), 1.0)
	samples := append(append([]float64{}, quiet...), loud...)

	a := &Analyzer{Classifier: loudnessClassifier{}, ChunkSeconds: 1.0, OverlapSeconds: 0.5, Runs: 3}
	s, err := a.AnalyzeWaveform(context.Background(), samples, rate)
	if err != nil {
		t.Fatalf("AnalyzeWaveform: %v", err)
	}
	if s == nil {
		t.Fatal("got nil summary")
	}

	if len(s.Phases) != 2 {
		t.Fatalf("got %d phases, want 2: %+v", len(s.Phases), s.Phases)
	}
	if s.Phases[0].Label != "sad" || s.Phases[1].Label != "happy" {
		t.Fatalf("phase labels %q, %q, want sad then happy", s.Phases[0].Label, s.Phases[1].Label)
	}
	if !almostEqual(s.Phases[0].Start, 0) || !almostEqual(s.Phases[1].End, 3) {
		t.Fatalf("timeline spans [%g, %g], want [0, 3]", s.Phases[0].Start, s.Phases[1].End)
	}
}

func TestAnalyzeWaveformNothingAnalyzable(t *testing.T) {
	rate := 16000
	a := &Analyzer{Classifier: &fixedClassifier{}, ChunkSeconds: 1.0, OverlapSeconds: 0.5, Runs: 3}

	tests := []struct {
		name    string
		samples []float64
	}{
		{"pure silence", make([]float64, 3*rate)},
		{"too short", sine(440, rate, 3000, 0.5)},
		{"empty", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := a.AnalyzeWaveform(context.Background(), tc.samples, rate)
			if err != nil {
				t.Fatalf("AnalyzeWaveform: %v", err)
			}
			if s != nil {
				t.Fatalf("got %+v, want nil summary", s)
			}
		})
	}
}

func TestAnalyzeWaveformRejectsBadSetup(t *testing.T) {
	rate := 16000
	tone := sine(440, rate, 3*rate, 0.5)

	a := &Analyzer{ChunkSeconds: 1.0, OverlapSeconds: 0.5}
	if _, err := a.AnalyzeWaveform(context.Background(), tone, rate); err == nil {
		t.Fatal("expected error without a classifier")
	}

	a = &Analyzer{Classifier: &fixedClassifier{}, ChunkSeconds: 1.0, OverlapSeconds: 1.0}
	if _, err := a.AnalyzeWaveform(context.Background(), tone, rate); err == nil {
		t.Fatal("expected error when overlap leaves no step")
	}

	a = &Analyzer{Classifier: &fixedClassifier{}, ChunkSeconds: 1.0, OverlapSeconds: 0.5}
	if _, err := a.AnalyzeWaveform(context.Background(), tone, 0); err == nil {
		t.Fatal("expected error for a zero sample rate")
	}
}

func TestAnalyzeWaveformHonorsContext(t *testing.T) {
	rate := 16000
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &Analyzer{Classifier: &fixedClassifier{p: Prediction{Label: "calm", Confidence: 0.9}}, ChunkSeconds: 1.0, OverlapSeconds: 0.5, Runs: 3}
	if _, err := a.AnalyzeWaveform(ctx, sine(440, rate, 3*rate, 0.5), rate); err == nil {
		t.Fatal("expected context error")
	}
}
