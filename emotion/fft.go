package emotion

import "math"

// fft computes an in-place iterative radix-2 FFT over re/im, which must
// share the same power-of-two length.
func fft(re, im []float64) {
	n := len(re)
	if n <= 1 {
		return
	}

	// Reorder into bit-reversed permutation.
	for i, j := 0, 0; i < n-1; i++ {
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
		m := n >> 1
		for m <= j {
			j -= m
			m >>= 1
		}
		j += m
	}

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := -2 * math.Pi / float64(size)
		for base := 0; base < n; base += size {
			for k := 0; k < half; k++ {
				wRe := math.Cos(step * float64(k))
				wIm := math.Sin(step * float64(k))
				a, b := base+k, base+k+half

				tRe := wRe*re[b] - wIm*im[b]
				tIm := wRe*im[b] + wIm*re[b]
				re[b] = re[a] - tRe
				im[b] = im[a] - tIm
				re[a] += tRe
				im[a] += tIm
			}
		}
	}
}
