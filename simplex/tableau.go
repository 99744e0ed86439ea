package simplex

import (
	"math"

	"github.com/fluxenvelope/fea/lpmodel"
)

const (
	simplexTol   = 1e-9
	maxSimplexIter = 2000
)

// relKind is the normalized form of one scalar bound on a linear
// expression, after the variable has been shifted so lb==0.
type relKind byte

const (
	relLE relKind = iota // expr <= rhs
	relGE                // expr >= rhs
	relEQ                // expr == rhs
)

type rowSpec struct {
	coeffs  map[int]float64 // y-column index -> coefficient
	rhs     float64
	kind    relKind
	conIdx  int // index into m.cons, or -1 for a variable upper-bound row
}

type rowMeta struct {
	sign   float64 // +1 if the row was used as built, -1 if flipped to keep rhs>=0
	refCol int      // the unit column (slack or artificial) identifying this row
	conIdx int
}

// solve rebuilds standard form from m's current variables/constraints and
// runs a two-phase dense tableau simplex, grounded on the phase
// structure of _examples/other_examples/...thinkeridea-optimize__convex-lp-simplex.go.
func solve(m *Model) (lpmodel.Status, error) {
	nOrig := len(m.vars)
	if nOrig == 0 {
		m.primal, m.varDual, m.conDual, m.objValue = map[*variable]float64{}, map[*variable]float64{}, map[*constraint]float64{}, 0
		return lpmodel.StatusOptimal, nil
	}

	varIdx := make(map[*variable]int, nOrig)
	for i, v := range m.vars {
		varIdx[v] = i
	}

	var specs []rowSpec

	for i, v := range m.vars {
		if !math.IsInf(v.ub, 1) {
			specs = append(specs, rowSpec{
				coeffs: map[int]float64{i: 1},
				rhs:    v.ub - v.lb,
				kind:   relLE,
				conIdx: -1,
			})
		}
	}

	for ci, c := range m.cons {
		coeffs := make(map[int]float64, len(c.terms))
		var offset float64
		for v, coeff := range c.terms {
			idx := varIdx[v]
			coeffs[idx] += coeff
			offset += coeff * v.lb
		}
		if !math.IsInf(c.lb, -1) {
			specs = append(specs, rowSpec{coeffs: copyCoeffs(coeffs), rhs: c.lb - offset, kind: relGE, conIdx: ci})
		}
		if c.ub == c.lb {
			// Equality already captured by the GE row above if lb is finite;
			// otherwise (lb==ub==-Inf, meaningless) fall through to no-op.
			if !math.IsInf(c.lb, -1) {
				specs[len(specs)-1].kind = relEQ
			}
		} else if !math.IsInf(c.ub, 1) {
			specs = append(specs, rowSpec{coeffs: copyCoeffs(coeffs), rhs: c.ub - offset, kind: relLE, conIdx: ci})
		}
	}

	m_ := len(specs)
	if m_ == 0 {
		// No constraints at all: every variable free within its own box;
		// minimize/maximize drives each to its own bound independently.
		return solveBoxOnly(m)
	}

	// Assign extra columns.
	ncols := nOrig
	type extra struct {
		slackCol, surplusCol, artificialCol int
	}
	extras := make([]extra, m_)
	metas := make([]rowMeta, m_)

	for i, spec := range specs {
		sign := 1.0
		rhs := spec.rhs
		kind := spec.kind
		if rhs < 0 {
			sign = -1
			rhs = -rhs
			switch kind {
			case relLE:
				kind = relGE
			case relGE:
				kind = relLE
			}
		}
		e := extra{slackCol: -1, surplusCol: -1, artificialCol: -1}
		var refCol int
		switch kind {
		case relLE:
			e.slackCol = ncols
			refCol = ncols
			ncols++
		case relGE:
			e.surplusCol = ncols
			ncols++
			e.artificialCol = ncols
			refCol = ncols
			ncols++
		case relEQ:
			e.artificialCol = ncols
			refCol = ncols
			ncols++
		}
		extras[i] = e
		metas[i] = rowMeta{sign: sign, refCol: refCol, conIdx: spec.conIdx}
		specs[i].rhs = rhs
		specs[i].kind = kind
	}

	rows := make([][]float64, m_)
	basis := make([]int, m_)
	isArtificial := make([]bool, ncols)

	for i, spec := range specs {
		row := make([]float64, ncols+1)
		sign := metas[i].sign
		for col, coeff := range spec.coeffs {
			row[col] = sign * coeff
		}
		e := extras[i]
		switch spec.kind {
		case relLE:
			row[e.slackCol] = 1
			basis[i] = e.slackCol
		case relGE:
			row[e.surplusCol] = -1
			row[e.artificialCol] = 1
			isArtificial[e.artificialCol] = true
			basis[i] = e.artificialCol
		case relEQ:
			row[e.artificialCol] = 1
			isArtificial[e.artificialCol] = true
			basis[i] = e.artificialCol
		}
		row[ncols] = spec.rhs
		rows[i] = row
	}

	anyArtificial := false
	for _, a := range isArtificial {
		if a {
			anyArtificial = true
			break
		}
	}

	if anyArtificial {
		obj1 := make([]float64, ncols+1)
		for j := 0; j < ncols; j++ {
			if isArtificial[j] {
				obj1[j] = 1
			}
		}
		canonicalize(obj1, rows, basis, ncols)

		ok, err := runSimplex(rows, obj1, basis, ncols, nil)
		if err != nil {
			return lpmodel.StatusError, err
		}
		if !ok {
			return lpmodel.StatusError, ErrIterationLimit
		}
		if -obj1[ncols] > simplexTol {
			return lpmodel.StatusInfeasible, nil
		}
	}

	signedC := make([]float64, ncols)
	for v, coeff := range m.objTerms {
		c := coeff
		if !m.minimize {
			c = -c
		}
		signedC[varIdx[v]] = c
	}

	obj2 := make([]float64, ncols+1)
	copy(obj2, signedC)
	canonicalizeWithCost(obj2, rows, basis, ncols, signedC)

	excluded := isArtificial
	ok, unbounded, err := runSimplexExcluding(rows, obj2, basis, ncols, excluded)
	if err != nil {
		return lpmodel.StatusError, err
	}
	if unbounded {
		return lpmodel.StatusUnbounded, nil
	}
	if !ok {
		return lpmodel.StatusError, ErrIterationLimit
	}

	yValues := make([]float64, nOrig)
	basicRow := make([]int, ncols)
	for i := range basicRow {
		basicRow[i] = -1
	}
	for i, b := range basis {
		basicRow[b] = i
	}
	for j := 0; j < nOrig; j++ {
		if r := basicRow[j]; r >= 0 {
			yValues[j] = rows[r][ncols]
		}
	}

	reportSign := 1.0
	if !m.minimize {
		reportSign = -1.0
	}

	primal := make(map[*variable]float64, nOrig)
	varDual := make(map[*variable]float64, nOrig)
	var constOffset float64
	for i, v := range m.vars {
		primal[v] = yValues[i] + v.lb
		varDual[v] = reportSign * obj2[i]
		constOffset += signedC[i] * v.lb
	}

	internalObjective := -obj2[ncols] + constOffset
	objValue := reportSign * internalObjective

	conDual := make(map[*constraint]float64, len(m.cons))
	for _, meta := range metas {
		if meta.conIdx < 0 {
			continue
		}
		internalDual := -meta.sign * obj2[meta.refCol]
		conDual[m.cons[meta.conIdx]] += reportSign * internalDual
	}
	for _, c := range m.cons {
		if _, ok := conDual[c]; !ok {
			conDual[c] = 0
		}
	}

	m.primal, m.varDual, m.conDual, m.objValue = primal, varDual, conDual, objValue
	return lpmodel.StatusOptimal, nil
}

func copyCoeffs(in map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// canonicalize builds a phase-1 objective row in place: obj[j] starts as
// the raw artificial-variable cost and is reduced against every row
// whose basic variable carries nonzero cost.
func canonicalize(obj []float64, rows [][]float64, basis []int, ncols int) {
	for i, b := range basis {
		cost := obj[b]
		if cost == 0 {
			continue
		}
		row := rows[i]
		for j := 0; j <= ncols; j++ {
			obj[j] -= cost * row[j]
		}
	}
}

func canonicalizeWithCost(obj []float64, rows [][]float64, basis []int, ncols int, cost []float64) {
	for i, b := range basis {
		c := cost[b]
		if c == 0 {
			continue
		}
		row := rows[i]
		for j := 0; j <= ncols; j++ {
			obj[j] -= c * row[j]
		}
	}
}

func pivot(rows [][]float64, obj []float64, basis []int, pivotRow, pivotCol, ncols int) {
	pr := rows[pivotRow]
	pv := pr[pivotCol]
	for j := 0; j <= ncols; j++ {
		pr[j] /= pv
	}
	for i, row := range rows {
		if i == pivotRow {
			continue
		}
		factor := row[pivotCol]
		if factor == 0 {
			continue
		}
		for j := 0; j <= ncols; j++ {
			row[j] -= factor * pr[j]
		}
	}
	factor := obj[pivotCol]
	if factor != 0 {
		for j := 0; j <= ncols; j++ {
			obj[j] -= factor * pr[j]
		}
	}
	basis[pivotRow] = pivotCol
}

// runSimplex runs the primal simplex loop to optimality, with no columns
// excluded from entering.
func runSimplex(rows [][]float64, obj []float64, basis []int, ncols int, excluded []bool) (bool, error) {
	ok, unbounded, err := runSimplexExcluding(rows, obj, basis, ncols, excluded)
	if unbounded {
		return false, ErrUnbounded
	}
	return ok, err
}

// runSimplexExcluding runs the primal simplex loop, refusing to let any
// column j with excluded[j] enter the basis.
func runSimplexExcluding(rows [][]float64, obj []float64, basis []int, ncols int, excluded []bool) (optimal bool, unbounded bool, err error) {
	for iter := 0; iter < maxSimplexIter; iter++ {
		pivotCol := -1
		best := -simplexTol
		for j := 0; j < ncols; j++ {
			if excluded != nil && excluded[j] {
				continue
			}
			if obj[j] < best {
				best = obj[j]
				pivotCol = j
			}
		}
		if pivotCol == -1 {
			return true, false, nil
		}

		pivotRow := -1
		bestRatio := math.Inf(1)
		for i, row := range rows {
			a := row[pivotCol]
			if a <= simplexTol {
				continue
			}
			ratio := row[ncols] / a
			if ratio < bestRatio-simplexTol || (ratio < bestRatio+simplexTol && (pivotRow == -1 || basis[i] < basis[pivotRow])) {
				bestRatio = ratio
				pivotRow = i
			}
		}
		if pivotRow == -1 {
			return false, true, nil
		}

		pivot(rows, obj, basis, pivotRow, pivotCol, ncols)
	}
	return false, false, nil
}

// solveBoxOnly handles the degenerate case of a model with variables but
// no constraints: each variable independently settles at whichever
// bound improves its own objective term.
func solveBoxOnly(m *Model) (lpmodel.Status, error) {
	primal := make(map[*variable]float64, len(m.vars))
	varDual := make(map[*variable]float64, len(m.vars))
	var obj float64
	for _, v := range m.vars {
		coeff := m.objTerms[v]
		signed := coeff
		if !m.minimize {
			signed = -coeff
		}
		x := v.lb
		if signed < 0 {
			if math.IsInf(v.ub, 1) {
				return lpmodel.StatusUnbounded, nil
			}
			x = v.ub
		}
		primal[v] = x
		varDual[v] = coeff
		obj += coeff * x
	}
	m.primal, m.varDual, m.conDual, m.objValue = primal, varDual, map[*constraint]float64{}, obj
	return lpmodel.StatusOptimal, nil
}
