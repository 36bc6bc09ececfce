// Package sprintmap defines a self-keying sparse integer trie.
//
// A Map never accepts keys from the caller: Insert generates a unique 30-bit
// key, stores the value under it and returns the key. Search, Insert and
// Remove all run in at most six node visits.
//
// The trie has a branching factor of 32 and depth [0..5]. Each level consumes
// a 5-bit fragment of the key, least significant fragment first:
//
//	key:   [ 29-25 ] [ 24-20 ] [ 19-15 ] [ 14-10 ] [ 09-05 ] [ 04-00 ]
//	depth:     5         4         3         2         1         0
//
// Each node has two 32-bit fields a and b plus packed key and ref arrays, one
// entry per occupied slot. The a/b pair encodes four slot classes:
//
//	a b
//	---
//	0 0  vacant
//	1 0  terminal   - key-value pair
//	0 1  internal   - child node; the key holds the path prefix
//	1 1  saturated  - child node whose subtree is completely full
//
// Saturation is tracked bottom-up from depth 5 and lets Keygen steer a random
// candidate away from full subtrees, so key generation never retries.
//
// Example trie holding three keys:
//
//	[root a:..001 b:..100]
//	  |-- 00: term 0x0000_0020
//	  `-- 02: node ---- [a:..011 b:0]
//	                      |-- 00: term 0x0000_0002
//	                      `-- 01: term 0x0000_0022
//
// A Map is not safe for concurrent use; guard it with a mutex or shard it.
package sprintmap
