package divquant

import "testing"

func TestCombinedMeanRecoversComplement(t *testing.T) {
	// Three points (0,6,9) with equal weight 1; splitting off the
	// point at value 9 (weight 1) must recover the remaining two
	// points' mean (3) from the parent's mean (5) algebraically.
	totalWeight, totalMean := 3.0, 5.0
	newWeight, newMean := 1.0, 9.0
	oldWeight, oldMean := combinedMean(totalWeight, totalMean, newWeight, newMean)
	if oldWeight != 2 {
		t.Errorf("oldWeight = %v, want 2", oldWeight)
	}
	if diff := oldMean - 3; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("oldMean = %v, want 3", oldMean)
	}
}

func TestCombinedVarianceRecoversComplement(t *testing.T) {
	// Values {0, 3, 6}: mean 3, variance (population) = ((3)^2+0+(3)^2)/3 = 6.
	vals := []float64{0, 3, 6}
	var sum, sumSq float64
	for _, v := range vals {
		sum += v
		sumSq += v * v
	}
	n := float64(len(vals))
	totalMean := sum / n
	totalVar := sumSq/n - sqr(totalMean)

	// Split off {6}: newMean=6, newVar=0, newWeight=1.
	newWeight, newMean, newVar := 1.0, 6.0, 0.0
	oldWeight, oldMean := combinedMean(n, totalMean, newWeight, newMean)
	oldVar := combinedVariance(n, totalMean, totalVar, newWeight, newMean, newVar, oldWeight, oldMean)

	// Remaining {0,3}: mean 1.5, variance = ((1.5)^2+(1.5)^2)/2 = 2.25.
	if diff := oldMean - 1.5; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("oldMean = %v, want 1.5", oldMean)
	}
	if diff := oldVar - 2.25; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("oldVar = %v, want 2.25", oldVar)
	}
}

func TestPointTriple(t *testing.T) {
	p := NewPoint(10, 20, 30)
	tr := pointTriple(p)
	if tr != (triple{10, 20, 30}) {
		t.Errorf("pointTriple(%v) = %v, want {10,20,30}", p, tr)
	}
}

func TestTripleMaxAxis(t *testing.T) {
	cases := []struct {
		t    triple
		axis int
		val  float64
	}{
		{triple{1, 5, 2}, 1, 5},
		// Ties resolve toward the lowest index: red over green over blue.
		{triple{5, 5, 5}, 0, 5},
		{triple{7, 7, 2}, 0, 7},
		{triple{1, 4, 4}, 1, 4},
	}
	for _, c := range cases {
		axis, val := c.t.maxAxis()
		if axis != c.axis || val != c.val {
			t.Errorf("%v.maxAxis() = (%d,%v), want (%d,%v)", c.t, axis, val, c.axis, c.val)
		}
	}
}
