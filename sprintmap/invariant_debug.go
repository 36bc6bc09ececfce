//go:build sprintmapdebug

package sprintmap

import (
	"github.com/pkg/errors"
)

// invariant panics with a stack-carrying error when an internal invariant does
// not hold. Only compiled with the sprintmapdebug build tag.
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(errors.Errorf("sprintmap: invariant violated: "+format, args...))
	}
}
