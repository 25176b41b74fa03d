package engine

import (
	"fmt"
	"math"
	"text/template/parse"
)

// WalkFunc is called for every node of a tree, parents before children.
type WalkFunc func(node parse.Node) error

// Walk visits every node of every tree in t in document order: a {{define}}
// body is walked at the point where it appears among the top-level nodes,
// starting with its root list. An error returned by fn stops the walk and is
// annotated with the node's location.
func Walk(t *Tree, fn WalkFunc) error {
	if len(t.Trees) == 0 {
		return nil
	}
	top, defines := t.Trees[0], t.Trees[1:]
	if top.Name != t.Source.ID || top.Root == nil {
		defines = t.Trees
		top = nil
	}

	next := 0
	flush := func(before parse.Pos) error {
		for ; next < len(defines) && defines[next].Root.Position() < before; next++ {
			if err := walkList(defines[next], defines[next].Root, fn); err != nil {
				return err
			}
		}
		return nil
	}

	if top != nil {
		if err := visit(top, top.Root, fn); err != nil {
			return err
		}
		for _, node := range top.Root.Nodes {
			if err := flush(node.Position()); err != nil {
				return err
			}
			if err := walkNode(top, node, fn); err != nil {
				return err
			}
		}
	}
	return flush(math.MaxInt)
}

func walkList(tree *parse.Tree, list *parse.ListNode, fn WalkFunc) error {
	if list == nil {
		return nil
	}
	if err := visit(tree, list, fn); err != nil {
		return err
	}
	for _, node := range list.Nodes {
		if err := walkNode(tree, node, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkNode(tree *parse.Tree, node parse.Node, fn WalkFunc) error {
	switch n := node.(type) {
	case *parse.ListNode:
		return walkList(tree, n, fn)
	case *parse.ActionNode:
		if err := visit(tree, n, fn); err != nil {
			return err
		}
		return walkPipe(tree, n.Pipe, fn)
	case *parse.IfNode:
		if err := visit(tree, n, fn); err != nil {
			return err
		}
		return walkBranch(tree, &n.BranchNode, fn)
	case *parse.RangeNode:
		if err := visit(tree, n, fn); err != nil {
			return err
		}
		return walkBranch(tree, &n.BranchNode, fn)
	case *parse.WithNode:
		if err := visit(tree, n, fn); err != nil {
			return err
		}
		return walkBranch(tree, &n.BranchNode, fn)
	case *parse.TemplateNode:
		if err := visit(tree, n, fn); err != nil {
			return err
		}
		return walkPipe(tree, n.Pipe, fn)
	case *parse.PipeNode:
		return walkPipe(tree, n, fn)
	case *parse.ChainNode:
		if err := visit(tree, n, fn); err != nil {
			return err
		}
		return walkNode(tree, n.Node, fn)
	default:
		return visit(tree, node, fn)
	}
}

func walkBranch(tree *parse.Tree, branch *parse.BranchNode, fn WalkFunc) error {
	if err := walkPipe(tree, branch.Pipe, fn); err != nil {
		return err
	}
	if err := walkList(tree, branch.List, fn); err != nil {
		return err
	}
	return walkList(tree, branch.ElseList, fn)
}

func walkPipe(tree *parse.Tree, pipe *parse.PipeNode, fn WalkFunc) error {
	if pipe == nil {
		return nil
	}
	if err := visit(tree, pipe, fn); err != nil {
		return err
	}
	for _, decl := range pipe.Decl {
		if err := visit(tree, decl, fn); err != nil {
			return err
		}
	}
	for _, cmd := range pipe.Cmds {
		if err := visit(tree, cmd, fn); err != nil {
			return err
		}
		for _, arg := range cmd.Args {
			if err := walkNode(tree, arg, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func visit(tree *parse.Tree, node parse.Node, fn WalkFunc) error {
	if err := fn(node); err != nil {
		location, _ := tree.ErrorContext(node)
		return fmt.Errorf("%s: %w", location, err)
	}
	return nil
}
