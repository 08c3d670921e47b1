package analysis

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// PositiveDiagonalQR canonicalizes a QR factorization in place: for every i
// with R[i,i] < 0 it negates column i of q and row i of r. The product q·r
// is unchanged and r ends with a non-negative diagonal.
func PositiveDiagonalQR(q, r *mat.Dense) error {
	qRows, qCols := q.Dims()
	rRows, rCols := r.Dims()
	if qCols != rCols {
		return fmt.Errorf("%w: Q has %d columns, R has %d", ErrDimensionMismatch, qCols, rCols)
	}

	for i := 0; i < rCols && i < rRows; i++ {
		if r.At(i, i) >= 0 {
			continue
		}
		for k := 0; k < qRows; k++ {
			q.Set(k, i, -q.At(k, i))
		}
		for k := 0; k < rCols; k++ {
			r.Set(i, k, -r.At(i, k))
		}
	}
	return nil
}

// orthonormalize factors a (n×m', m' >= m) and returns the first m columns of
// Q and the leading m×m block of R with a non-negative diagonal.
func orthonormalize(a *mat.Dense, m int) (*mat.Dense, *mat.Dense, error) {
	n, _ := a.Dims()

	var qr mat.QR
	qr.Factorize(a)

	var qFull, rFull mat.Dense
	qr.QTo(&qFull)
	qr.RTo(&rFull)

	q := mat.DenseCopyOf(qFull.Slice(0, n, 0, m))
	r := mat.DenseCopyOf(rFull.Slice(0, m, 0, m))
	if err := PositiveDiagonalQR(q, r); err != nil {
		return nil, nil, err
	}
	return q, r, nil
}

// seedBasis returns the initial n×m perturbation basis.
func seedBasis(n, m int, init Init, rng *rand.Rand) (*mat.Dense, error) {
	if init == InitUnit {
		q := mat.NewDense(n, m, nil)
		for i := 0; i < m; i++ {
			q.Set(i, i, 1)
		}
		return q, nil
	}

	a := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			a.Set(i, j, rng.NormFloat64())
		}
	}
	q, _, err := orthonormalize(a, m)
	return q, err
}
