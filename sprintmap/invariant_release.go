//go:build !sprintmapdebug

package sprintmap

func invariant(bool, string, ...any) {}
