package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsciiTree_SingleNode(t *testing.T) {
	root := NewTreeNode("root")

	assert.Equal(t, "root\n", AsciiTree(root))
}

func TestAsciiTree_NestedChildren(t *testing.T) {
	root := NewTreeNode("compile_unit")
	sub := root.AddLabel("subprogram main")
	sub.AddLabel("formal_parameter argc")
	sub.AddLabel("formal_parameter argv")
	root.AddLabel("base_type int")

	expected := "compile_unit\n" +
		"├── subprogram main\n" +
		"│   ├── formal_parameter argc\n" +
		"│   └── formal_parameter argv\n" +
		"└── base_type int\n"

	assert.Equal(t, expected, AsciiTree(root))
}

func TestAsciiTree_LastChildUsesBlankPrefix(t *testing.T) {
	root := NewTreeNode("a")
	b := root.AddLabel("b")
	b.AddLabel("c")

	expected := "a\n" +
		"└── b\n" +
		"    └── c\n"

	assert.Equal(t, expected, AsciiTree(root))
}
