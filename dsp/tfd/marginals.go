package tfd

// TimeMarginal returns Σ_f D[t][f] for every time index.
// For kernels with k(eta, 0) = 1 this equals the instantaneous power x[t]².
func TimeMarginal(d [][]float64) []float64 {
	out := make([]float64, len(d))
	for t, row := range d {
		var sum float64
		for _, v := range row {
			sum += v
		}
		out[t] = sum
	}
	return out
}

// FrequencyMarginal returns Σ_t D[t][f] for every frequency index.
func FrequencyMarginal(d [][]float64) []float64 {
	if len(d) == 0 {
		return []float64{}
	}
	out := make([]float64, len(d[0]))
	for _, row := range d {
		for f, v := range row {
			out[f] += v
		}
	}
	return out
}

// TotalEnergy returns Σ_t Σ_f D[t][f].
// For kernels with k(0, 0) = 1 this equals the signal energy Σ x[t]².
func TotalEnergy(d [][]float64) float64 {
	var sum float64
	for _, row := range d {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// Peak returns the position and value of the largest cell of d.
// It returns (-1, -1, 0) for an empty matrix.
func Peak(d [][]float64) (t, f int, value float64) {
	t, f = -1, -1
	for i, row := range d {
		for j, v := range row {
			if t < 0 || v > value {
				t, f, value = i, j, v
			}
		}
	}
	return t, f, value
}

// NegativeFraction returns the share of the absolute distribution mass held
// by negative cells. Bilinear distributions go negative where cross-terms
// interfere, so this is a cheap interference indicator. It returns 0 for an
// all-zero matrix.
func NegativeFraction(d [][]float64) float64 {
	var neg, total float64
	for _, row := range d {
		for _, v := range row {
			if v < 0 {
				neg -= v
				total -= v
			} else {
				total += v
			}
		}
	}
	if total == 0 {
		return 0
	}
	return neg / total
}
