// Package qsearch finds the unrooted binary tree that best explains a
// distance matrix, scored by how many weighted quartet topologies it
// agrees with.
//
// 🚀 What is in the box?
//
//	A deterministic, seedable search stack over compact trees:
//		• Trees: fixed-layout unrooted binary trees, canonical form, hashing
//		• Paths: all-pairs hop counts and unique node paths
//		• Mutations: leaf swap, subtree transfer, subtree interchange
//		• Scoring: normalized quartet score in [0, 1]
//		• Search: population hill climbing and annealed MCMC
//
// Under the hood, everything is organized under a handful of subpackages:
//
//	matrix/   — dense float64 matrices, distance validation, Floyd–Warshall
//	tree/     — Tree, PathMatrix and the three structural rewrites
//	mutation/ — mutation codes, neighborhood enumeration, random walks
//	quartet/  — Scorer and induced tree metrics
//	search/   — SolveHillClimb, SolveMCMC and their single steps
//	cmd/      — the qsearch command line tool
//
// Quick example, four leaves where {0,1} and {2,3} are close:
//
//	0       2
//	 \     /
//	  4───5
//	 /     \
//	1       3
//
// scores 1 against the matrix, and either other pairing scores 0.
//
//	go install github.com/katalvlaran/qsearch/cmd/qsearch@latest
package qsearch
