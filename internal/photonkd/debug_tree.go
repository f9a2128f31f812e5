package photonkd

import (
	"fmt"
	"io"
	"strings"
)

var axisNames = [3]string{"x", "y", "z"}

// DumpKD prints the tree with indentation (one tab per level). Interior
// lines carry subtree counts (nodes, leaves, point references); every
// line carries the extent.
func DumpKD(w io.Writer, t *Tree) {
	if t == nil || len(t.nodes) == 0 {
		fmt.Fprintln(w, "[KD] <empty>")
		return
	}
	memo := make([]treeCounts, len(t.nodes))
	totals := t.countSubtree(0, memo)
	fmt.Fprintf(w, "[KD] root: nodes=%d leaves=%d refs=%d points=%d\n", totals.nodes, totals.leaves, totals.refs, t.numPoints)
	t.printSubtree(w, 0, memo)
}

type treeCounts struct {
	nodes  int
	leaves int
	refs   int
}

func (t *Tree) countSubtree(i int32, memo []treeCounts) treeCounts {
	if i == noChild {
		return treeCounts{}
	}
	n := &t.nodes[i]
	if n.leaf {
		c := treeCounts{nodes: 1, leaves: 1, refs: len(n.Points)}
		memo[i] = c
		return c
	}
	bc := t.countSubtree(n.Below, memo)
	ac := t.countSubtree(n.Above, memo)
	c := treeCounts{
		nodes:  1 + bc.nodes + ac.nodes,
		leaves: bc.leaves + ac.leaves,
		refs:   bc.refs + ac.refs,
	}
	memo[i] = c
	return c
}

func (t *Tree) printSubtree(w io.Writer, i int32, memo []treeCounts) {
	if i == noChild {
		return
	}
	n := &t.nodes[i]
	ind := strings.Repeat("\t", n.Depth)
	if n.leaf {
		fmt.Fprintf(w, "%sLEAF  points=%d | min=(%.5g,%.5g,%.5g) max=(%.5g,%.5g,%.5g)\n",
			ind, len(n.Points),
			n.Extent.Min.X, n.Extent.Min.Y, n.Extent.Min.Z,
			n.Extent.Max.X, n.Extent.Max.Y, n.Extent.Max.Z,
		)
		return
	}
	c := memo[i]
	fmt.Fprintf(w, "%sNODE  %s=%.5g nodes=%d leaves=%d refs=%d | min=(%.5g,%.5g,%.5g) max=(%.5g,%.5g,%.5g)\n",
		ind, axisNames[n.Axis], n.Split, c.nodes, c.leaves, c.refs,
		n.Extent.Min.X, n.Extent.Min.Y, n.Extent.Min.Z,
		n.Extent.Max.X, n.Extent.Max.Y, n.Extent.Max.Z,
	)
	t.printSubtree(w, n.Below, memo)
	t.printSubtree(w, n.Above, memo)
}
