package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eddieland/twig/internal/graph"
)

// RenderTree prints the dependency tree rooted at root as indented lines,
// one per branch, with ahead/behind counts and Jira/PR annotations
// alongside each node. A non-empty include filters out any branch whose
// name does not contain the pattern (case-insensitive substring match);
// ancestors of a matching branch are kept so the tree stays connected.
func RenderTree(g *graph.Graph, root string, include string) {
	if root == "" || g.Nodes[root] == nil {
		PrintWarning("No branches found to render", "")
		return
	}

	keep := computeKeepSet(g, root, include)
	if len(keep) == 0 {
		PrintWarning("No branches match", include)
		return
	}

	renderNode(g, root, "", true, keep)
}

func computeKeepSet(g *graph.Graph, root, include string) map[string]bool {
	if include == "" {
		keep := make(map[string]bool, len(g.Nodes))
		for name := range g.Nodes {
			keep[name] = true
		}
		return keep
	}

	needle := strings.ToLower(include)
	keep := make(map[string]bool)
	for name, node := range g.Nodes {
		if strings.Contains(strings.ToLower(name), needle) {
			markAncestors(g, node, keep)
		}
	}
	keep[root] = true
	return keep
}

func markAncestors(g *graph.Graph, node *graph.Node, keep map[string]bool) {
	for node != nil && !keep[node.Name] {
		keep[node.Name] = true
		if node.PrimaryParent == "" {
			return
		}
		node = g.Nodes[node.PrimaryParent]
	}
}

func renderNode(g *graph.Graph, name, prefix string, isLast bool, keep map[string]bool) {
	node := g.Nodes[name]
	if node == nil || !keep[name] {
		return
	}

	connector := "├── "
	childPrefix := prefix + "│   "
	if isLast {
		connector = "└── "
		childPrefix = prefix + "    "
	}
	if prefix == "" {
		connector = ""
		childPrefix = ""
	}

	fmt.Println(prefix + connector + formatNodeLabel(node))

	children := make([]string, 0, len(node.Children))
	for _, c := range node.Children {
		if keep[c] {
			children = append(children, c)
		}
	}
	sort.Strings(children)

	for i, child := range children {
		renderNode(g, child, childPrefix, i == len(children)-1, keep)
	}
}

func formatNodeLabel(node *graph.Node) string {
	label := node.Name
	if node.Current {
		label = styleSuccess.Render("* " + label)
	}

	var annotations []string
	if node.CountsKnown && (node.Ahead != 0 || node.Behind != 0) {
		annotations = append(annotations, fmt.Sprintf("+%d/-%d", node.Ahead, node.Behind))
	}
	if node.JiraIssue != "" {
		annotations = append(annotations, node.JiraIssue)
	}
	if node.GithubPR != nil {
		annotations = append(annotations, fmt.Sprintf("PR#%d", *node.GithubPR))
	}

	if len(annotations) == 0 {
		return label
	}
	return label + " " + styleDim.Render("("+strings.Join(annotations, ", ")+")")
}
