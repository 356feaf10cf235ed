package model_selection

// UnboundedDepth marks a tree with no depth limit.
const UnboundedDepth = 0

// Params is one hyperparameter configuration for a random forest.
type Params struct {
	NEstimators     int
	MaxFeatures     string
	MaxDepth        int // UnboundedDepth means no limit
	MinSamplesSplit int
	MinSamplesLeaf  int
}

// ParamGrid enumerates the candidate values per hyperparameter axis.
type ParamGrid struct {
	NEstimators     []int
	MaxFeatures     []string
	MaxDepth        []int
	MinSamplesSplit []int
	MinSamplesLeaf  []int
}

// Size returns the number of configurations in the Cartesian product.
func (g ParamGrid) Size() int {
	return len(g.NEstimators) * len(g.MaxFeatures) * len(g.MaxDepth) *
		len(g.MinSamplesSplit) * len(g.MinSamplesLeaf)
}

// Candidates enumerates the full Cartesian product in deterministic
// order, axes nested in field order.
func (g ParamGrid) Candidates() []Params {
	out := make([]Params, 0, g.Size())
	for _, nEst := range g.NEstimators {
		for _, mf := range g.MaxFeatures {
			for _, depth := range g.MaxDepth {
				for _, minSplit := range g.MinSamplesSplit {
					for _, minLeaf := range g.MinSamplesLeaf {
						out = append(out, Params{
							NEstimators:     nEst,
							MaxFeatures:     mf,
							MaxDepth:        depth,
							MinSamplesSplit: minSplit,
							MinSamplesLeaf:  minLeaf,
						})
					}
				}
			}
		}
	}
	return out
}

// ReferenceGrid returns the workflow's exhaustive 2160-candidate grid:
// 10 tree counts × 2 feature strategies × 12 depths × 3 split minimums
// × 3 leaf minimums.
func ReferenceGrid() ParamGrid {
	nEstimators := make([]int, 0, 10)
	for n := 100; n <= 1000; n += 100 {
		nEstimators = append(nEstimators, n)
	}

	maxDepth := make([]int, 0, 12)
	for d := 10; d <= 110; d += 10 {
		maxDepth = append(maxDepth, d)
	}
	maxDepth = append(maxDepth, UnboundedDepth)

	return ParamGrid{
		NEstimators:     nEstimators,
		MaxFeatures:     []string{"all", "sqrt"},
		MaxDepth:        maxDepth,
		MinSamplesSplit: []int{2, 5, 10},
		MinSamplesLeaf:  []int{1, 2, 4},
	}
}
