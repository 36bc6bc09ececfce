//go:build !sprintmapdebug

package sprintmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvariant_CompiledOut(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { invariant(false, "slot %d broken", 7) })
}
