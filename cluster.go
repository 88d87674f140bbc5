package divquant

import "math"

// SplitConfig configures SplitCluster.
type SplitConfig struct {
	// NumClusters is the target palette size K.
	NumClusters int
	// NumBits is the palette bit depth, used only to round the means
	// handed to Snapshot (the split arithmetic itself is bit-depth
	// agnostic, and ClusterResult.Means are returned unrounded).
	NumBits int
	// MaxIterations is the number of local 2-means refinement passes
	// run after each split. Zero disables refinement.
	MaxIterations int
	// Weights holds a per-point weight parallel to the point slice.
	// If nil, WeightUniform applies to every point instead.
	Weights []float64
	// WeightUniform is the scalar weight applied to every point when
	// Weights is nil.
	WeightUniform float64
	// Snapshot, if non-nil, receives a copy of the cluster means and an
	// accessor into the live membership table after every completed
	// split (used by diagnostics to
	// render a "cluster walk"). Left nil, this costs nothing.
	Snapshot SnapshotSink
}

// SnapshotSink receives one notification per completed split.
type SnapshotSink interface {
	OnSplit(splitIndex int, means []Point, member func(i int) int, numPoints int)
}

// ClusterResult is the output of SplitCluster: the final per-cluster
// means (in cluster-id order, including empty clusters so palette
// building can skip them by id) and the membership table mapping each
// deduplicated point to its final cluster id.
type ClusterResult struct {
	Means      []triple
	Sizes      []int
	Membership membership
}

// activeBuffer is the compacted subsequence of points currently
// belonging to the cluster being split, plus a parallel index array
// mapping active positions back to original point indices. The first
// active buffer borrows the caller's point slice directly (no copy);
// every subsequent one owns a reused scratch buffer.
type activeBuffer struct {
	points []Point
	index  []int
	owned  bool
}

// SplitCluster performs divisive hierarchical clustering: K-1 splits
// of a weighted point cloud, choosing at each step the cluster with
// the largest TSE, cutting along its highest-variance axis at its
// mean, and optionally refining the split with bounded local 2-means.
func SplitCluster(points []Point, cfg SplitConfig) (*ClusterResult, error) {
	numPoints := len(points)
	numColors := cfg.NumClusters
	if numColors < 1 {
		return nil, invalidConfigf("NumClusters must be positive, got %d", numColors)
	}
	if numPoints == 0 {
		return nil, invalidConfigf("no points to cluster")
	}
	uniform := cfg.Weights == nil

	member := newMembership(numPoints, numColors)

	weight := make([]float64, numColors)
	size := make([]int, numColors)
	tse := make([]float64, numColors)
	mean := make([]triple, numColors)
	varr := make([]triple, numColors)

	var totalWeight float64
	if uniform {
		totalWeight = float64(numPoints) * cfg.WeightUniform
	} else {
		for _, w := range cfg.Weights {
			totalWeight += w
		}
	}

	oldIndex := 0
	weight[oldIndex] = totalWeight
	tmpNumPoints := numPoints
	size[oldIndex] = tmpNumPoints
	mean[oldIndex], varr[oldIndex] = initMeanAndVar(points, cfg.Weights, totalWeight, uniform)

	active := activeBuffer{points: points, index: identityIndex(numPoints), owned: false}

	var scratchPoints []Point
	var scratchIndex []int
	scratchAllocated := false

	applyLKM := cfg.MaxIterations > 0
	maxIters := cfg.MaxIterations

	splitsDone := 0

	for newIndex := 1; newIndex < numColors; newIndex++ {
		totalW := weight[oldIndex]
		totalMean, totalVar := mean[oldIndex], varr[oldIndex]

		cutAxis, cutPos := cutAxisAndPos(totalVar, totalMean)

		// Initial split scan: points strictly beyond the cut move to
		// the new cluster.
		var newSum, newSumSq triple
		var newWeight float64
		var newWeightCount int
		var newSize int
		accumulateVarianceNow := !applyLKM

		for ip, p := range active.points {
			proj := float64(p.channel(cutAxis))
			if cutPos < proj {
				t := pointTriple(p)
				if uniform {
					newSum[0] += t[0]
					newSum[1] += t[1]
					newSum[2] += t[2]
				} else {
					pointIndex := active.index[ip]
					w := cfg.Weights[pointIndex]
					newSum[0] += w * t[0]
					newSum[1] += w * t[1]
					newSum[2] += w * t[2]
				}

				if accumulateVarianceNow {
					pointIndex := active.index[ip]
					member.set(pointIndex, newIndex)
					if uniform {
						newSumSq[0] += t[0] * t[0]
						newSumSq[1] += t[1] * t[1]
						newSumSq[2] += t[2] * t[2]
					} else {
						w := cfg.Weights[pointIndex]
						newSumSq[0] += w * t[0] * t[0]
						newSumSq[1] += w * t[1] * t[1]
						newSumSq[2] += w * t[2] * t[2]
					}
					newSize++
				}
				if uniform {
					newWeightCount++
				} else {
					pointIndex := active.index[ip]
					newWeight += cfg.Weights[pointIndex]
				}
			}
		}
		if uniform {
			newSum[0] *= cfg.WeightUniform
			newSum[1] *= cfg.WeightUniform
			newSum[2] *= cfg.WeightUniform
			newWeight = float64(newWeightCount) * cfg.WeightUniform
			if accumulateVarianceNow {
				newSumSq[0] *= cfg.WeightUniform
				newSumSq[1] *= cfg.WeightUniform
				newSumSq[2] *= cfg.WeightUniform
			}
		}

		// A cluster with zero variance along its widest axis has every
		// member at exactly the cut position, so the strict "<" test
		// moves nothing: newWeight stays 0. Dividing by it would
		// produce 0/0 (NaN) and poison both centers for the rest of
		// the run, so this split is treated as a no-op instead -- the
		// old cluster is left exactly as it was and the new cluster
		// starts, and stays, empty.
		degenerate := newWeight == 0

		var newMean, oldMean triple
		var oldWeight float64
		if degenerate {
			newMean, oldMean = totalMean, totalMean
			oldWeight = totalW
		} else {
			for k := 0; k < 3; k++ {
				newMean[k] = newSum[k] / newWeight
			}
			for k := 0; k < 3; k++ {
				oldWeight, oldMean[k] = combinedMean(totalW, totalMean[k], newWeight, newMean[k])
			}
		}
		mean[oldIndex] = oldMean
		mean[newIndex] = newMean

		// Bounded local 2-means refinement between the two centers.
		lkmIters := maxIters
		if degenerate {
			lkmIters = 0
		}
		for it := 0; it < lkmIters; it++ {
			lhs := 0.5 * (sqr(oldMean[0]) - sqr(newMean[0]) +
				sqr(oldMean[1]) - sqr(newMean[1]) +
				sqr(oldMean[2]) - sqr(newMean[2]))
			rhs := triple{oldMean[0] - newMean[0], oldMean[1] - newMean[1], oldMean[2] - newMean[2]}

			isLast := it == maxIters-1
			newSum = triple{}
			newSumSq = triple{}
			newWeight = 0
			newSize = 0

			for ip, p := range active.points {
				t := pointTriple(p)
				proj := rhs[0]*t[0] + rhs[1]*t[1] + rhs[2]*t[2]
				pointIndex := active.index[ip]

				if lhs < proj {
					if isLast {
						member.set(pointIndex, oldIndex)
					}
					continue
				}

				if isLast {
					member.set(pointIndex, newIndex)
				}

				var w float64
				if uniform {
					w = 1
				} else {
					w = cfg.Weights[pointIndex]
				}
				if uniform {
					newSum[0] += t[0]
					newSum[1] += t[1]
					newSum[2] += t[2]
				} else {
					newSum[0] += w * t[0]
					newSum[1] += w * t[1]
					newSum[2] += w * t[2]
				}
				if isLast {
					if uniform {
						newSumSq[0] += t[0] * t[0]
						newSumSq[1] += t[1] * t[1]
						newSumSq[2] += t[2] * t[2]
					} else {
						newSumSq[0] += w * t[0] * t[0]
						newSumSq[1] += w * t[1] * t[1]
						newSumSq[2] += w * t[2] * t[2]
					}
				}
				if !uniform {
					newWeight += w
				}
				newSize++
			}

			if uniform {
				newSum[0] *= cfg.WeightUniform
				newSum[1] *= cfg.WeightUniform
				newSum[2] *= cfg.WeightUniform
				newWeight = float64(newSize) * cfg.WeightUniform
				newSumSq[0] *= cfg.WeightUniform
				newSumSq[1] *= cfg.WeightUniform
				newSumSq[2] *= cfg.WeightUniform
			}

			// A refinement pass can itself reassign every point back
			// to the old side; guard it the same way the initial
			// split is guarded above. The whole split collapses to a
			// no-op, so both recorded centers revert to the parent's.
			if newWeight == 0 {
				oldMean, newMean = totalMean, totalMean
				oldWeight = totalW
				mean[oldIndex] = oldMean
				mean[newIndex] = newMean
				break
			}
			for k := 0; k < 3; k++ {
				newMean[k] = newSum[k] / newWeight
			}
			for k := 0; k < 3; k++ {
				oldWeight, oldMean[k] = combinedMean(totalW, totalMean[k], newWeight, newMean[k])
			}
			mean[oldIndex] = oldMean
			mean[newIndex] = newMean
		}
		degenerate = degenerate || newWeight == 0

		size[oldIndex] = tmpNumPoints - newSize
		size[newIndex] = newSize
		splitsDone++
		if cfg.Snapshot != nil {
			cfg.Snapshot.OnSplit(splitsDone, snapshotPalette(mean, cfg.NumBits), member.get, numPoints)
		}

		if newIndex == numColors-1 {
			break
		}

		// Finalize variances and TSEs for both halves.
		var newVar, oldVar triple
		if degenerate {
			oldVar = totalVar
			oldWeight = totalW
			newWeight = 0
		} else {
			for k := 0; k < 3; k++ {
				newVar[k] = newSumSq[k]/newWeight - sqr(newMean[k])
			}
			for k := 0; k < 3; k++ {
				oldVar[k] = combinedVariance(totalW, totalMean[k], totalVar[k], newWeight, newMean[k], newVar[k], oldWeight, oldMean[k])
			}
		}
		varr[oldIndex] = oldVar
		varr[newIndex] = newVar

		weight[oldIndex] = oldWeight
		weight[newIndex] = newWeight

		tse[oldIndex] = oldWeight * (oldVar[0] + oldVar[1] + oldVar[2])
		tse[newIndex] = newWeight * (newVar[0] + newVar[1] + newVar[2])

		// Pick the next cluster to split: max TSE, ties -> lowest id.
		maxVal := -math.MaxFloat64
		for ic := 0; ic <= newIndex; ic++ {
			if maxVal < tse[ic] {
				maxVal = tse[ic]
				oldIndex = ic
			}
		}
		tmpNumPoints = size[oldIndex]

		if !scratchAllocated {
			largerSize := size[0]
			if numColors > 1 && size[1] > largerSize {
				largerSize = size[1]
			}
			scratchPoints = make([]Point, largerSize)
			scratchIndex = make([]int, largerSize)
			scratchAllocated = true
		}

		count := 0
		for ip := 0; ip < numPoints; ip++ {
			if member.get(ip) == oldIndex {
				if count < len(scratchPoints) {
					scratchPoints[count] = points[ip]
					scratchIndex[count] = ip
				} else {
					scratchPoints = append(scratchPoints, points[ip])
					scratchIndex = append(scratchIndex, ip)
				}
				count++
			}
		}
		if count != tmpNumPoints {
			return nil, invariantViolationf("cluster to be split is expected to be of size %d, not %d", tmpNumPoints, count)
		}
		active = activeBuffer{points: scratchPoints[:count], index: scratchIndex[:count], owned: true}
	}

	return &ClusterResult{Means: mean, Sizes: size, Membership: member}, nil
}

func identityIndex(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// initMeanAndVar computes the whole point set's weighted mean and
// variance (mu = sum(w*x)/W, sigma^2 = sum(w*x^2)/W - mu^2). In
// uniform mode the weights all cancel against the total, so plain
// sums divided by the point count suffice.
func initMeanAndVar(points []Point, weights []float64, totalWeight float64, uniform bool) (mean, variance triple) {
	var sum, sumSq triple
	for ip, p := range points {
		t := pointTriple(p)
		if uniform {
			sum[0] += t[0]
			sum[1] += t[1]
			sum[2] += t[2]
			sumSq[0] += t[0] * t[0]
			sumSq[1] += t[1] * t[1]
			sumSq[2] += t[2] * t[2]
		} else {
			w := weights[ip]
			sum[0] += w * t[0]
			sum[1] += w * t[1]
			sum[2] += w * t[2]
			sumSq[0] += w * t[0] * t[0]
			sumSq[1] += w * t[1] * t[1]
			sumSq[2] += w * t[2] * t[2]
		}
	}
	div := totalWeight
	if uniform {
		div = float64(len(points))
	}
	for k := 0; k < 3; k++ {
		mean[k] = sum[k] / div
		variance[k] = sumSq[k]/div - sqr(mean[k])
	}
	return
}

// cutAxisAndPos picks the channel with the largest variance (ties
// broken red > green > blue) and the target cluster's mean along it.
func cutAxisAndPos(variance, mean triple) (axis int, pos float64) {
	axis, _ = variance.maxAxis()
	return axis, mean[axis]
}

// snapshotPalette renders every cluster slot's current mean, including
// ones not yet split off (still zero) -- it must stay index-aligned
// with the membership ids OnSplit's caller hands out, unlike
// BuildPalette's final compaction which can safely drop empty ones.
func snapshotPalette(mean []triple, numBits int) []Point {
	out := make([]Point, len(mean))
	for i := range mean {
		out[i] = roundMeanToPoint(mean[i], numBits)
	}
	return out
}
