package lattice_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluxenvelope/fea/lattice"
	"github.com/fluxenvelope/fea/lpmodel"
	"github.com/fluxenvelope/fea/simplex"
	"github.com/fluxenvelope/fea/varproxy"
)

// pyramidModel builds the three-dimensional pyramid of spec scenario 1:
// y >= 0, y-x <= 1, y+x <= 1, y-z <= 1, y+z <= 1.
func pyramidModel(t *testing.T) *simplex.Model {
	t.Helper()
	model := simplex.NewModel()
	x, err := model.AddVariable("x", -1000, 1000)
	require.NoError(t, err)
	y, err := model.AddVariable("y", -1000, 1000)
	require.NoError(t, err)
	z, err := model.AddVariable("z", -1000, 1000)
	require.NoError(t, err)

	_, err = model.AddConstraint("y_nonneg", map[lpmodel.Variable]float64{y: 1}, 0, math.Inf(1))
	require.NoError(t, err)
	_, err = model.AddConstraint("y_minus_x", map[lpmodel.Variable]float64{y: 1, x: -1}, math.Inf(-1), 1)
	require.NoError(t, err)
	_, err = model.AddConstraint("y_plus_x", map[lpmodel.Variable]float64{y: 1, x: 1}, math.Inf(-1), 1)
	require.NoError(t, err)
	_, err = model.AddConstraint("y_minus_z", map[lpmodel.Variable]float64{y: 1, z: -1}, math.Inf(-1), 1)
	require.NoError(t, err)
	_, err = model.AddConstraint("y_plus_z", map[lpmodel.Variable]float64{y: 1, z: 1}, math.Inf(-1), 1)
	require.NoError(t, err)

	return model
}

func TestScenarioPyramidProjectsToTriangleOnXY(t *testing.T) {
	model := pyramidModel(t)
	g, err := lattice.New(model, []varproxy.Spec{{Name: "x"}, {Name: "y"}}, lattice.WithMaxValue(1000), lattice.WithSeed(1))
	require.NoError(t, err)

	_, err = g.Solve()
	require.NoError(t, err)

	require.True(t, g.Complete())
	require.Equal(t, 0, g.ModifiedEulerCharacteristic())
	require.Equal(t, []int{3, 3, 1}, g.FVector())
}

func TestScenarioPyramidProjectsToSquareOnXZ(t *testing.T) {
	model := pyramidModel(t)
	g, err := lattice.New(model, []varproxy.Spec{{Name: "x"}, {Name: "z"}}, lattice.WithMaxValue(1000), lattice.WithSeed(1))
	require.NoError(t, err)

	_, err = g.Solve()
	require.NoError(t, err)

	require.True(t, g.Complete())
	require.Equal(t, 0, g.ModifiedEulerCharacteristic())
	require.Equal(t, []int{4, 4, 1}, g.FVector())
}

func TestScenarioBoxInTwoD(t *testing.T) {
	model := simplex.NewModel()
	_, err := model.AddVariable("x", -10, 10)
	require.NoError(t, err)
	_, err = model.AddVariable("y", -10, 10)
	require.NoError(t, err)

	g, err := lattice.New(model, []varproxy.Spec{{Name: "x"}, {Name: "y"}}, lattice.WithMaxValue(10), lattice.WithSeed(2))
	require.NoError(t, err)

	_, err = g.Solve()
	require.NoError(t, err)

	require.Equal(t, []int{4, 4, 1}, g.FVector())

	for _, v := range g.GetVertices() {
		pt, err := v.Point()
		require.NoError(t, err)
		require.InDelta(t, 10.0, math.Abs(pt[0]), 1e-3)
		require.InDelta(t, 10.0, math.Abs(pt[1]), 1e-3)
	}
}

// capped4DModel builds a 4-variable box plus one cross-cutting capacity
// constraint, the shared fixture for the projection scenarios.
func capped4DModel(t *testing.T) (*simplex.Model, []string) {
	t.Helper()
	names := []string{"a", "b", "c", "d"}
	model := simplex.NewModel()
	terms := make(map[lpmodel.Variable]float64, len(names))
	for _, n := range names {
		v, err := model.AddVariable(n, -10, 10)
		require.NoError(t, err)
		terms[v] = 1
	}
	_, err := model.AddConstraint("capacity", terms, math.Inf(-1), 15)
	require.NoError(t, err)
	return model, names
}

func TestScenarioRandomProjectionMatchesOriginalLP(t *testing.T) {
	model, _ := capped4DModel(t)

	g, err := lattice.New(model, []varproxy.Spec{{Name: "a"}, {Name: "b"}}, lattice.WithMaxValue(10), lattice.WithSeed(7))
	require.NoError(t, err)
	_, err = g.Solve()
	require.NoError(t, err)

	projected, err := g.ToLPModel()
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		cx, cy := rng.Float64()*2-1, rng.Float64()*2-1

		orig := model.Clone()
		ox, _ := orig.VariableByName("a")
		oy, _ := orig.VariableByName("b")
		require.NoError(t, orig.SetObjective(map[lpmodel.Variable]float64{ox: cx, oy: cy}, false))
		status, err := orig.Optimize()
		require.NoError(t, err)
		require.Equal(t, lpmodel.StatusOptimal, status)
		origVal, err := orig.ObjectiveValue()
		require.NoError(t, err)

		proj := projected.Clone()
		px, _ := proj.VariableByName("a")
		py, _ := proj.VariableByName("b")
		require.NoError(t, proj.SetObjective(map[lpmodel.Variable]float64{px: cx, py: cy}, false))
		status, err = proj.Optimize()
		require.NoError(t, err)
		require.Equal(t, lpmodel.StatusOptimal, status)
		projVal, err := proj.ObjectiveValue()
		require.NoError(t, err)

		require.InDelta(t, origVal, projVal, 1e-3)
	}
}

func TestScenarioProjectionConsistency(t *testing.T) {
	direct, _ := capped4DModel(t)
	gDirect, err := lattice.New(direct, []varproxy.Spec{{Name: "a"}, {Name: "b"}}, lattice.WithMaxValue(10), lattice.WithSeed(11))
	require.NoError(t, err)
	_, err = gDirect.Solve()
	require.NoError(t, err)

	staged, _ := capped4DModel(t)
	gStage1, err := lattice.New(staged, []varproxy.Spec{{Name: "a"}, {Name: "b"}, {Name: "c"}}, lattice.WithMaxValue(10), lattice.WithSeed(11))
	require.NoError(t, err)
	_, err = gStage1.Solve()
	require.NoError(t, err)

	mid, err := gStage1.ToLPModel()
	require.NoError(t, err)

	gStage2, err := lattice.New(mid, []varproxy.Spec{{Name: "a"}, {Name: "b"}}, lattice.WithMaxValue(10), lattice.WithSeed(11))
	require.NoError(t, err)
	_, err = gStage2.Solve()
	require.NoError(t, err)

	require.Equal(t, gDirect.FVector(), gStage2.FVector())
}

func TestScenarioUnboundedVariableClampsToMaxValue(t *testing.T) {
	model := simplex.NewModel()
	_, err := model.AddVariable("y", -5, 5)
	require.NoError(t, err)
	// "x" is never declared: lattice.New auto-creates it at the full
	// +/-maxValue search box, matching a genuinely unbounded LP variable.

	g, err := lattice.New(model, []varproxy.Spec{{Name: "x"}, {Name: "y"}}, lattice.WithMaxValue(1000), lattice.WithSeed(3))
	require.NoError(t, err)
	_, err = g.Solve()
	require.NoError(t, err)

	var sawX, sawY bool
	for _, f := range g.GetFacets() {
		h := f.Halfspaces()[0]
		require.True(t, h.Real())
		rhs := math.Abs(h.RHS())
		switch {
		case math.Abs(rhs-1000) < 1e-2:
			sawX = true
		case math.Abs(rhs-5) < 1e-2:
			sawY = true
		}
	}
	require.True(t, sawX, "expected a facet clamped at +/-1000 for the unbounded variable")
	require.True(t, sawY, "expected a facet at +/-5 for the bounded variable")
}

func TestScenarioDegenerateLPDoesNotCrash(t *testing.T) {
	model := simplex.NewModel()
	names := []string{"x", "y", "z"}
	terms := make(map[lpmodel.Variable]float64, len(names))
	for _, n := range names {
		v, err := model.AddVariable(n, -10, 10)
		require.NoError(t, err)
		terms[v] = 1
	}
	_, err := model.AddConstraint("sum_upper", terms, math.Inf(-1), 10)
	require.NoError(t, err)
	scaled := make(map[lpmodel.Variable]float64, len(names))
	for v, c := range terms {
		scaled[v] = c * 2
	}
	_, err = model.AddConstraint("sum_upper_scaled", scaled, math.Inf(-1), 20)
	require.NoError(t, err)

	g, err := lattice.New(model, []varproxy.Spec{{Name: "x"}, {Name: "y"}, {Name: "z"}},
		lattice.WithMaxValue(10), lattice.WithMaxIter(30), lattice.WithSeed(5))
	require.NoError(t, err)

	require.NotPanics(t, func() {
		_, err = g.Solve()
	})
	require.NoError(t, err)

	for _, f := range g.GetFacets() {
		require.True(t, f.Real())
	}
}
