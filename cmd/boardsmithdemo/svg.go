package main

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/visibility"
)

// debugSVGOptions configures the element-tree debug visualization,
// generalized from the teacher's export.SVGOptions down to the handful
// of knobs a tree diagram (rather than a dungeon graph) needs.
type debugSVGOptions struct {
	NodeWidth  int
	NodeHeight int
	XGap       int
	YGap       int
	Margin     int
}

func defaultDebugSVGOptions() debugSVGOptions {
	return debugSVGOptions{
		NodeWidth:  140,
		NodeHeight: 40,
		XGap:       20,
		YGap:       70,
		Margin:     30,
	}
}

// treeNode is one laid-out box in the debug diagram.
type treeNode struct {
	label    string
	x, y     int
	children []*treeNode
}

// exportProjectedTreeSVG renders the subtree rooted at root as seen by
// viewerPos: elements invisible to the viewer are rendered as an
// anonymized "(hidden)" box so the shape of the tree survives without
// leaking what a real client could never see (spec.md §4.2's visibility
// rules, applied here for developer debugging rather than a production
// client). This is a developer visualization tool, not a rendering path
// any game client is meant to consume.
func exportProjectedTreeSVG(root element.Element, viewerPos int, opts debugSVGOptions) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("boardsmithdemo: cannot render a nil root")
	}

	tn, width, depth := layoutTree(root, viewerPos, 0)
	width++

	canvasW := opts.Margin*2 + width*(opts.NodeWidth+opts.XGap)
	canvasH := opts.Margin*2 + (depth+1)*(opts.NodeHeight+opts.YGap)

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(canvasW, canvasH)
	canvas.Rect(0, 0, canvasW, canvasH, "fill:#101018")

	drawTree(canvas, tn, opts)

	canvas.End()
	return buf.Bytes(), nil
}

// layoutTree assigns each visible-or-anonymized node a column position
// via a simple left-to-right, depth-first pass, returning the built
// node, the next free column index, and the maximum depth reached.
func layoutTree(e element.Element, viewerPos int, depth int) (*treeNode, int, int) {
	nextCol := 0
	maxDepth := depth
	return layoutSubtree(e, viewerPos, depth, &nextCol, &maxDepth), nextCol, maxDepth
}

func layoutSubtree(e element.Element, viewerPos int, depth int, nextCol *int, maxDepth *int) *treeNode {
	if depth > *maxDepth {
		*maxDepth = depth
	}

	vis := element.EffectiveVisibility(e)
	owner := element.OwnerPosition(e)
	visible := visibility.Resolve(viewerPos, vis, owner)

	label := fmt.Sprintf("%s:%s", e.ClassName(), e.Name())
	if !visible {
		label = fmt.Sprintf("%s (hidden)", e.ClassName())
	}

	node := &treeNode{label: label}

	if visible && vis.Mode != visibility.CountOnly {
		for _, child := range e.Children() {
			node.children = append(node.children, layoutSubtree(child, viewerPos, depth+1, nextCol, maxDepth))
		}
	}

	if len(node.children) == 0 {
		node.x = *nextCol
		*nextCol++
	} else {
		first := node.children[0].x
		last := node.children[len(node.children)-1].x
		node.x = (first + last) / 2
	}
	node.y = depth
	return node
}

// drawTree renders tn and its subtree, edges first so nodes sit on top.
func drawTree(canvas *svg.SVG, tn *treeNode, opts debugSVGOptions) {
	drawEdges(canvas, tn, opts)
	drawNodes(canvas, tn, opts)
}

func nodeCenter(tn *treeNode, opts debugSVGOptions) (int, int) {
	cx := opts.Margin + tn.x*(opts.NodeWidth+opts.XGap) + opts.NodeWidth/2
	cy := opts.Margin + tn.y*(opts.NodeHeight+opts.YGap) + opts.NodeHeight/2
	return cx, cy
}

func drawEdges(canvas *svg.SVG, tn *treeNode, opts debugSVGOptions) {
	px, py := nodeCenter(tn, opts)
	for _, child := range tn.children {
		cx, cy := nodeCenter(child, opts)
		canvas.Line(px, py+opts.NodeHeight/2, cx, cy-opts.NodeHeight/2, "stroke:#555;stroke-width:1")
		drawEdges(canvas, child, opts)
	}
}

func drawNodes(canvas *svg.SVG, tn *treeNode, opts debugSVGOptions) {
	cx, cy := nodeCenter(tn, opts)
	x := cx - opts.NodeWidth/2
	y := cy - opts.NodeHeight/2
	canvas.Rect(x, y, opts.NodeWidth, opts.NodeHeight, "fill:#24243e;stroke:#8888aa;stroke-width:1;rx:6")
	canvas.Text(cx, cy+4, tn.label, "fill:#eeeeee;font-size:11px;text-anchor:middle;font-family:monospace")
	for _, child := range tn.children {
		drawNodes(canvas, child, opts)
	}
}
