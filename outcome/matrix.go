// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package outcome implements the consensus engine that turns a branch's
// reveal votes into a finalised Outcome record: NA imputation,
// participation accounting, the reputation-weighted first principal
// component of the vote matrix, smoothed reputation, and per-decision
// payout inputs.
package outcome

import "math"

// weightedMean returns the weighted mean of column over rows, skipping
// entries equal to na.
func weightedMean(weights []float64, column []float64, na float64) float64 {
	sum, sumWeights := 0.0, 0.0
	for i, w := range weights {
		if w <= 0 || column[i] == na {
			continue
		}
		sum += w * column[i]
		sumWeights += w
	}
	if sumWeights <= 0 {
		return 0
	}
	return sum / sumWeights
}

// normalizeAbs takes the absolute value of every entry then scales so
// the entries sum to one; a zero-sum vector is left unchanged.
func normalizeAbs(v []float64) []float64 {
	out := make([]float64, len(v))
	sum := 0.0
	for i, x := range v {
		if x < 0 {
			x = -x
		}
		out[i] = x
		sum += x
	}
	if 0 == sum {
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func norm2(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// weightedCovariance computes the reputation-weighted covariance
// matrix of M (V rows x D columns), centred on the weighted column
// mean, matching tc_wgt_prin_comp's wCVM (tc_mat.c).
func weightedCovariance(weights []float64, m [][]float64) [][]float64 {
	v := len(m)
	d := len(m[0])

	x := make([][]float64, v)
	for i := range x {
		x[i] = make([]float64, d)
	}
	for j := 0; j < d; j++ {
		avg := 0.0
		for i := 0; i < v; i++ {
			avg += weights[i] * m[i][j]
		}
		for i := 0; i < v; i++ {
			x[i][j] = m[i][j] - avg
		}
	}

	sumSqWeights := 0.0
	for _, w := range weights {
		sumSqWeights += w * w
	}
	factor := 1.0
	if denom := 1.0 - sumSqWeights; denom > 1e-12 {
		factor = 1.0 / denom
	}

	cov := make([][]float64, d)
	for i := range cov {
		cov[i] = make([]float64, d)
	}
	for i := 0; i < d; i++ {
		for j := 0; j <= i; j++ {
			sum := 0.0
			for k := 0; k < v; k++ {
				sum += weights[k] * x[k][i] * x[k][j]
			}
			cov[i][j] = factor * sum
			cov[j][i] = cov[i][j]
		}
	}
	return cov
}

// dominantEigenvector finds the unit eigenvector of the dominant
// eigenvalue of a symmetric matrix by power iteration. wCVM (the
// weighted vote covariance matrix) is symmetric positive
// semi-definite, so this converges to the same vector tc_mat_svd's
// first left singular vector would yield, without porting a full
// bidiagonal SVD for a component this small.
func dominantEigenvector(a [][]float64) []float64 {
	n := len(a)
	v := make([]float64, n)
	for i := range v {
		v[i] = 1.0 / math.Sqrt(float64(n))
	}

	for iter := 0; iter < 200; iter++ {
		next := make([]float64, n)
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				sum += a[i][j] * v[j]
			}
			next[i] = sum
		}
		length := norm2(next)
		if 0 == length {
			return v
		}
		for i := range next {
			next[i] /= length
		}

		delta := 0.0
		for i := range next {
			d := next[i] - v[i]
			delta += d * d
		}
		v = next
		if delta < 1e-18 {
			break
		}
	}
	return v
}

// firstPrincipalComponent ports tc_wgt_prin_comp: it returns the
// reputation-weighted first loading vector (length D, normalised so
// its squares sum to one) and the corresponding voter scores (length
// V), oriented so dot(scores, oldRep) >= 0 (spec.md §4.4 stage 3's
// explicit sign convention).
func firstPrincipalComponent(oldRep []float64, m [][]float64) (loadings []float64, scores []float64) {
	v := len(m)
	d := len(m[0])

	cov := weightedCovariance(oldRep, m)
	loadings = dominantEigenvector(cov)

	colAvg := make([]float64, d)
	for j := 0; j < d; j++ {
		for i := 0; i < v; i++ {
			colAvg[j] += oldRep[i] * m[i][j]
		}
	}

	scores = make([]float64, v)
	for i := 0; i < v; i++ {
		sum := 0.0
		for j := 0; j < d; j++ {
			sum += (m[i][j] - colAvg[j]) * loadings[j]
		}
		scores[i] = sum
	}

	if dot(scores, oldRep) < 0 {
		for i := range loadings {
			loadings[i] = -loadings[i]
		}
		for i := range scores {
			scores[i] = -scores[i]
		}
	}

	return loadings, scores
}
