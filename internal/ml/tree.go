package ml

import "sort"

// A node's feature index is -1 at leaves.
type treeNode struct {
	feature   int
	threshold float64
	left      int
	right     int
	value     float64
}

// regressionTree is a depth-limited least-squares regression tree stored as a
// flat node slice.
type regressionTree struct {
	nodes []treeNode
}

const minSplitSamples = 2

// fitTree grows a tree on the given row subset, considering only the given
// feature columns at each split.
func fitTree(x [][]float64, y []float64, rows, features []int, maxDepth int) *regressionTree {
	t := &regressionTree{}
	t.grow(x, y, rows, features, maxDepth)
	return t
}

func (t *regressionTree) predict(v []float64) float64 {
	i := 0
	for {
		n := t.nodes[i]
		if n.feature < 0 {
			return n.value
		}
		if v[n.feature] <= n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
}

func (t *regressionTree) grow(x [][]float64, y []float64, rows, features []int, depth int) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{feature: -1, value: meanAt(y, rows)})

	if depth <= 0 || len(rows) < minSplitSamples {
		return idx
	}

	feature, threshold, ok := bestSplit(x, y, rows, features)
	if !ok {
		return idx
	}

	leftRows, rightRows := partition(x, rows, feature, threshold)
	if len(leftRows) == 0 || len(rightRows) == 0 {
		return idx
	}

	left := t.grow(x, y, leftRows, features, depth-1)
	right := t.grow(x, y, rightRows, features, depth-1)
	t.nodes[idx].feature = feature
	t.nodes[idx].threshold = threshold
	t.nodes[idx].left = left
	t.nodes[idx].right = right
	return idx
}

// bestSplit scans every candidate feature for the threshold that maximizes
// the reduction in squared error. Thresholds are midpoints between adjacent
// distinct values.
func bestSplit(x [][]float64, y []float64, rows, features []int) (int, float64, bool) {
	n := len(rows)
	var totalSum float64
	for _, i := range rows {
		totalSum += y[i]
	}
	parentScore := totalSum * totalSum / float64(n)

	const minGain = 1e-12
	bestGain := minGain
	bestFeature := -1
	bestThreshold := 0.0

	pairs := make([]valueTarget, n)
	for _, f := range features {
		for k, i := range rows {
			pairs[k] = valueTarget{value: x[i][f], target: y[i]}
		}
		sort.Slice(pairs, func(a, b int) bool { return pairs[a].value < pairs[b].value })

		var leftSum float64
		for k := 0; k < n-1; k++ {
			leftSum += pairs[k].target
			if pairs[k].value == pairs[k+1].value {
				continue
			}
			nl := float64(k + 1)
			nr := float64(n - k - 1)
			rightSum := totalSum - leftSum
			gain := leftSum*leftSum/nl + rightSum*rightSum/nr - parentScore
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (pairs[k].value + pairs[k+1].value) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

type valueTarget struct {
	value  float64
	target float64
}

func partition(x [][]float64, rows []int, feature int, threshold float64) (left, right []int) {
	for _, i := range rows {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

func meanAt(y []float64, rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, i := range rows {
		sum += y[i]
	}
	return sum / float64(len(rows))
}
