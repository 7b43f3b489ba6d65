// Package quartet scores how well a tree topology explains a distance
// matrix.
//
// Every 4-subset {a,b,c,d} of leaves has three pairings: ab|cd, ac|bd and
// ad|bc. A tree embeds exactly one of them (the one whose two within-pair
// hop counts sum to less than the others). The cost of a pairing is the sum
// of its two within-pair distances. Summed over all quartets, the cost of
// the embedded pairings (C) lies between the sum of per-quartet minimum
// costs (m) and maximum costs (M); the normalized score is
//
//	S(T) = (M − C) / (M − m)
//
// so 1 means every quartet is resolved the cheapest way. When M equals m
// no topology is preferred and the score is 1.
//
// Scoring visits all C(L,4) quartets and is the hot spot of every search.
package quartet
