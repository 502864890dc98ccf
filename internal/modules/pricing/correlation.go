package pricing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/traderoyale/engine/internal/domain"
)

// Cross-category correlation of sector shocks. Stocks and crypto move
// together more than either does with commodities.
var categoryOrder = []domain.AssetCategory{
	domain.CategoryStock,
	domain.CategoryCommodity,
	domain.CategoryCrypto,
}

var categoryCorrelation = []float64{
	1.0, 0.1, 0.4,
	0.1, 1.0, 0.1,
	0.4, 0.1, 1.0,
}

// sectorBeta controls how much of an asset's diffusion comes from its
// category's shared shock versus its own idiosyncratic draw. The weights
// are chosen so the combined draw stays standard normal.
const sectorBeta = 0.6

// choleskyFactor returns the lower-triangular factor L of the category
// correlation matrix, so L*z produces correlated shocks from independent
// standard normals z.
func choleskyFactor() *mat.TriDense {
	n := len(categoryOrder)
	sigma := mat.NewSymDense(n, categoryCorrelation)

	var chol mat.Cholesky
	if ok := chol.Factorize(sigma); !ok {
		// The matrix is a fixed positive-definite constant; failure here
		// means the constants above were edited into something invalid.
		panic("pricing: category correlation matrix is not positive definite")
	}

	var lower mat.TriDense
	chol.LTo(&lower)
	return &lower
}

// Roll draws a fresh set of correlated per-category sector shocks. The
// engine calls it once per price tick so all assets in a category share
// the same sector draw for that tick.
func (m *Model) Roll() {
	n := len(categoryOrder)
	z := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		z.SetVec(i, m.normal())
	}

	var correlated mat.VecDense
	correlated.MulVec(m.chol, z)

	for i, category := range categoryOrder {
		m.sectorShocks[category] = correlated.AtVec(i)
	}
}

// sectorShock returns the current tick's shared shock for a category.
func (m *Model) sectorShock(category domain.AssetCategory) float64 {
	return m.sectorShocks[category]
}
