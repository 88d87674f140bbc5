package divquant

func sqr(x float64) float64 { return x * x }

// combinedMean recovers the weight and mean of the complement of a
// subcluster, given the parent's total weight/mean and the
// subcluster's weight/mean -- the "combined-moment identity" that lets
// SplitCluster avoid a second scan over the data.
//
//	W1 = W - W2
//	mu1 = (W*mu - W2*mu2) / W1
func combinedMean(totalWeight, totalMean, newWeight, newMean float64) (oldWeight, oldMean float64) {
	oldWeight = totalWeight - newWeight
	oldMean = (totalWeight*totalMean - newWeight*newMean) / oldWeight
	return
}

// combinedVariance recovers the variance of the complement of a
// subcluster from the parent's (weight, mean, variance), the
// subcluster's (weight, mean, variance), and the already-recovered
// complement mean.
//
//	sigma1^2 = [(W*sigma^2 - W2*(sigma2^2 + (mu2-mu)^2)) / W1] - (mu1-mu)^2
func combinedVariance(totalWeight, totalMean, totalVar, newWeight, newMean, newVar, oldWeight, oldMean float64) float64 {
	return (totalWeight*totalVar-newWeight*(newVar+sqr(newMean-totalMean)))/oldWeight - sqr(oldMean-totalMean)
}

// triple is a small per-channel (R, G, B) value container, used for
// means, variances, and the weighted-sum accumulators that feed them.
type triple [3]float64

// maxAxis returns the index and value of the largest component, ties
// broken toward the lowest index.
func (t triple) maxAxis() (axis int, val float64) {
	axis, val = 0, t[0]
	if t[1] > val {
		axis, val = 1, t[1]
	}
	if t[2] > val {
		axis, val = 2, t[2]
	}
	return
}

func pointTriple(p Point) triple {
	return triple{float64(p.R()), float64(p.G()), float64(p.B())}
}
