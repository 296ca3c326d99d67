package utils

import (
	"fmt"
	"strings"
)

// A node of an ascii tree. Label is the text shown at the node's row,
// children are drawn below it with branch connectors
type TreeNode struct {
	Label    string
	Children []*TreeNode
}

// Creates a leaf node with a formatted label
func NewTreeNode(format string, args ...any) *TreeNode {
	return &TreeNode{Label: fmt.Sprintf(format, args...)}
}

// Appends a child node and returns it so callers can keep descending
func (n *TreeNode) Add(child *TreeNode) *TreeNode {
	n.Children = append(n.Children, child)
	return child
}

// Appends a leaf child with a formatted label and returns it
func (n *TreeNode) AddLabel(format string, args ...any) *TreeNode {
	return n.Add(NewTreeNode(format, args...))
}

const (
	tree_branch      string = "├── "
	tree_last_branch string = "└── "
	tree_pipe        string = "│   "
	tree_blank       string = "    "
)

func drawTree(node *TreeNode, prefix string, builder *strings.Builder) {
	for i, child := range node.Children {
		connector := tree_branch
		childPrefix := prefix + tree_pipe

		if i == len(node.Children)-1 {
			connector = tree_last_branch
			childPrefix = prefix + tree_blank
		}

		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(child.Label)
		builder.WriteString("\n")

		drawTree(child, childPrefix, builder)
	}
}

// Prints an ascii diagram of a tree, one node per row, with box drawing
// connectors between parents and children
func AsciiTree(root *TreeNode) string {
	var builder strings.Builder

	builder.WriteString(root.Label)
	builder.WriteString("\n")
	drawTree(root, "", &builder)

	return builder.String()
}
