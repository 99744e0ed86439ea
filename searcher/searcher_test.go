package searcher_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluxenvelope/fea/halfspace"
	"github.com/fluxenvelope/fea/lpmodel"
	"github.com/fluxenvelope/fea/searcher"
	"github.com/fluxenvelope/fea/simplex"
	"github.com/fluxenvelope/fea/varproxy"
)

// boxModel returns a 2-variable model bounded in [-10,10]^2 with its two
// VarProxy wrappers, mirroring the kind of model LatticeGraph hands a
// Searcher.
func boxModel(t *testing.T) (*simplex.Model, []*varproxy.Proxy) {
	t.Helper()
	model := simplex.NewModel()
	px, err := varproxy.New(model, varproxy.Spec{Name: "x"}, -10, 10)
	require.NoError(t, err)
	py, err := varproxy.New(model, varproxy.Spec{Name: "y"}, -10, 10)
	require.NoError(t, err)
	return model, []*varproxy.Proxy{px, py}
}

func TestSearcherFindsFacetInDirection(t *testing.T) {
	model, vars := boxModel(t)
	s := searcher.New(model, vars, 1e-6, rand.New(rand.NewSource(1)), nil)

	require.NoError(t, s.Set([]float64{1, 0}, nil))

	ok, err := s.GetSolution()
	require.NoError(t, err)
	require.True(t, ok)

	vp, err := s.VP()
	require.NoError(t, err)
	require.InDelta(t, 10.0, vp[0], 1e-6)

	counter := 0
	nextID := func() int { counter++; return counter }
	h, err := s.BoundingHalfspace(nextID)
	require.NoError(t, err)
	require.NotNil(t, h)
	require.True(t, h.Contains(vp, -1))
}

func TestSearcherRespectsActiveHalfspace(t *testing.T) {
	model, vars := boxModel(t)
	s := searcher.New(model, vars, 1e-6, rand.New(rand.NewSource(2)), nil)

	right, err := halfspace.New(1, []float64{1, 0}, []float64{10, 0}, true, 1e-6, nil)
	require.NoError(t, err)

	require.NoError(t, s.Set([]float64{0, 1}, []*halfspace.Halfspace{right}))

	ok, err := s.GetSolution()
	require.NoError(t, err)
	require.True(t, ok)

	vp, err := s.VP()
	require.NoError(t, err)
	require.InDelta(t, 10.0, vp[0], 1e-3)
	require.InDelta(t, 10.0, vp[1], 1e-6)
}

func TestDeactivateClearsConstraints(t *testing.T) {
	model, vars := boxModel(t)
	s := searcher.New(model, vars, 1e-6, rand.New(rand.NewSource(3)), nil)

	top, err := halfspace.New(1, []float64{0, 1}, []float64{0, 10}, true, 1e-6, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set([]float64{1, 0}, []*halfspace.Halfspace{top}))
	require.NoError(t, s.Deactivate())

	ok, err := s.GetSolution()
	require.NoError(t, err)
	require.True(t, ok)

	vp, err := s.VP()
	require.NoError(t, err)
	require.InDelta(t, 10.0, vp[0], 1e-6)
}

func TestPseudoHalfspaceWhenUnderdetermined(t *testing.T) {
	model, vars := boxModel(t)
	s := searcher.New(model, vars, 1e-6, rand.New(rand.NewSource(4)), nil)
	require.NoError(t, s.Set([]float64{1, 1}, nil))

	ok, err := s.GetSolution()
	require.NoError(t, err)
	require.True(t, ok)

	counter := 0
	h, err := s.PseudoHalfspace(func() int { counter++; return counter })
	require.NoError(t, err)
	require.False(t, h.Real())
	require.Len(t, h.Required(), 0)
}

func TestHdAllLengthMatchesActiveHalfspaces(t *testing.T) {
	model, vars := boxModel(t)
	s := searcher.New(model, vars, 1e-6, rand.New(rand.NewSource(5)), nil)

	h1, err := halfspace.New(1, []float64{1, 0}, []float64{10, 0}, true, 1e-6, nil)
	require.NoError(t, err)
	h2, err := halfspace.New(2, []float64{0, 1}, []float64{0, 10}, true, 1e-6, nil)
	require.NoError(t, err)

	require.NoError(t, s.Set([]float64{1, 1}, []*halfspace.Halfspace{h1, h2}))

	_, err = s.GetSolution()
	require.NoError(t, err)

	duals, err := s.HdAll()
	require.NoError(t, err)
	require.Len(t, duals, 2)
}

func TestGetSolutionReportsNoSolutionWhenInfeasibleWithNoActiveHalfspace(t *testing.T) {
	model := simplex.NewModel()
	x, err := model.AddVariable("x", -10, 10)
	require.NoError(t, err)
	_, err = model.AddConstraint("x_ge_5", map[lpmodel.Variable]float64{x: 1}, 5, 1e18)
	require.NoError(t, err)
	_, err = model.AddConstraint("x_le_neg5", map[lpmodel.Variable]float64{x: 1}, -1e18, -5)
	require.NoError(t, err)

	px, err := varproxy.New(model, varproxy.Spec{Name: "x"}, -10, 10)
	require.NoError(t, err)
	s := searcher.New(model, []*varproxy.Proxy{px}, 1e-6, rand.New(rand.NewSource(6)), nil)

	require.NoError(t, s.Set([]float64{1}, nil))
	ok, err := s.GetSolution()
	require.NoError(t, err, "an infeasible model with no active halfspace to perturb must report no-solution, not error")
	require.False(t, ok)
}

var _ lpmodel.Model = (*simplex.Model)(nil)
