package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/moodline/moodline/emotion"
)

// Classifier calls a remote emotion classification service over HTTP.
// It satisfies emotion.Classifier. Transport errors and 5xx responses are
// retried with exponential backoff; 4xx responses fail immediately.
type Classifier struct {
	h          *HTTP
	url        string
	maxElapsed time.Duration
}

func NewClassifier(h *HTTP, url string) *Classifier {
	return &Classifier{h: h, url: url, maxElapsed: 12 * time.Second}
}

type predictReq struct {
	Samples    []float64 `json:"samples"`
	SampleRate int       `json:"sample_rate"`
}

type predictResp struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Predict runs one classification pass on a chunk. The ensemble voter
// calls this repeatedly; a returned error simply drops that run from the
// vote, so failures here are cheap.
func (c *Classifier) Predict(ctx context.Context, samples []float64, sampleRate int) (emotion.Prediction, error) {
	body, err := json.Marshal(predictReq{Samples: samples, SampleRate: sampleRate})
	if err != nil {
		return emotion.Prediction{}, fmt.Errorf("classifier encode: %w", err)
	}

	var out predictResp
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/predict", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.h.c.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			b, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("classifier %s: %s", resp.Status, string(b))
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("classifier %s: %s", resp.Status, string(b)))
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return backoff.Permanent(fmt.Errorf("classifier decode: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.maxElapsed
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return emotion.Prediction{}, err
	}
	return emotion.Prediction{Label: out.Label, Confidence: out.Confidence}, nil
}
