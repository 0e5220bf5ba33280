// Package audio decodes recordings into analysis-ready waveforms and
// provides the amplitude preprocessing (normalization, silence trimming)
// applied before segmentation.
package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ErrUndecodable is returned for input that cannot be decoded into a
// waveform. Decode failures never yield partial samples.
var ErrUndecodable = errors.New("undecodable input")

// LoadWAV decodes a PCM WAV file into mono float64 samples in [-1, 1]
// plus the file's sample rate. Multi-channel audio is downmixed by
// averaging the channels per frame.
func LoadWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: %w", path, ErrUndecodable)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, ErrUndecodable)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 || buf.Format.SampleRate <= 0 {
		return nil, 0, fmt.Errorf("%s: %w", path, ErrUndecodable)
	}

	ch := buf.Format.NumChannels
	depth := int(dec.BitDepth)
	if depth == 0 {
		depth = buf.SourceBitDepth
	}
	if depth <= 1 || depth > 32 {
		return nil, 0, fmt.Errorf("%s: %w", path, ErrUndecodable)
	}
	scale := float64(int64(1) << (depth - 1))

	frames := len(buf.Data) / ch
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c]) / scale
		}
		samples[i] = sum / float64(ch)
	}
	return samples, buf.Format.SampleRate, nil
}
