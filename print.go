// Copyright 2014-2022 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lazytree

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"
)

// Print writes the physical shape of the tree to w, one node per line.
// Inactive nodes are shown with a "(deleted)" suffix.  It is meant for
// debugging and its format is not stable.
func (t *Tree[K]) Print(w io.Writer) error {
	if t.root == nil {
		_, err := io.WriteString(w, "(empty)\n")
		return err
	}
	tp := treeprint.NewWithRoot(nodeLabel("", t.root))
	addChildren(tp, t.root)
	_, err := io.WriteString(w, tp.String())
	return err
}

func addChildren[K any](tp treeprint.Tree, n *node[K]) {
	for _, c := range []struct {
		side string
		n    *node[K]
	}{{"L", n.left}, {"R", n.right}} {
		switch {
		case c.n == nil:
		case c.n.left == nil && c.n.right == nil:
			tp.AddNode(nodeLabel(c.side, c.n))
		default:
			addChildren(tp.AddBranch(nodeLabel(c.side, c.n)), c.n)
		}
	}
}

func nodeLabel[K any](side string, n *node[K]) string {
	label := fmt.Sprint(n.key)
	if side != "" {
		label = side + " " + label
	}
	if !n.active {
		label += " (deleted)"
	}
	return label
}
