package sprintmap

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// newThreeKeyMap returns the map holding 0x02, 0x22 and 0x20 where root slot
// 2 links to a node holding the first two.
func newThreeKeyMap(t *testing.T) *Map[string] {
	t.Helper()

	m := New[string](WithSource(newSeqSource(0x02, 0x22, 0x20)))

	for _, val := range []string{"a", "b", "c"} {
		_, ok := m.Insert(val)
		require.True(t, ok)
	}

	requireSound(t, m)

	return m
}

func kinds(violations []Violation) []ViolationKind {
	var out []ViolationKind
	for _, v := range violations {
		out = append(out, v.Kind)
	}
	return out
}

func TestCheckIntegrity_Sound(t *testing.T) {
	t.Parallel()

	m := New[int](WithSource(gofakeit.New(7)))

	for i := 0; i < 5_000; i++ {
		_, ok := m.Insert(i)
		require.True(t, ok)
	}

	assert.Empty(t, m.CheckIntegrity())
	assert.NoError(t, m.Validate())
}

func TestCheckIntegrity_Violations(t *testing.T) {
	t.Parallel()

	for _, tcase := range []*struct {
		Name    string
		Corrupt func(m *Map[string])
		Exp     []ViolationKind
	}{
		{
			Name: "term address",
			Corrupt: func(m *Map[string]) {
				child := m.root.refs[1].child
				child.keys[1] = 0x23 // slot 1 of the node under root slot 2
			},
			Exp: []ViolationKind{BadTerm},
		},
		{
			Name: "term above key space",
			Corrupt: func(m *Map[string]) {
				m.root.keys[0] |= 0x8000_0000
			},
			Exp: []ViolationKind{BadTerm},
		},
		{
			Name: "link prefix",
			Corrupt: func(m *Map[string]) {
				m.root.keys[1] = 0x03
			},
			Exp: []ViolationKind{BadLink},
		},
		{
			Name: "size counter",
			Corrupt: func(m *Map[string]) {
				m.size++
			},
			Exp: []ViolationKind{BadSize},
		},
		{
			Name: "lone terminal",
			Corrupt: func(m *Map[string]) {
				child := m.root.refs[1].child
				child.a &^= 1 << 1
				child.deleteAt(1)
				m.size--
			},
			Exp: []ViolationKind{BadNode},
		},
		{
			Name: "false saturation",
			Corrupt: func(m *Map[string]) {
				m.root.a |= 1 << 2
			},
			Exp: []ViolationKind{BadSaturation},
		},
		{
			Name: "packing",
			Corrupt: func(m *Map[string]) {
				m.root.a |= 1 << 9
			},
			Exp: []ViolationKind{BadPacking, BadSize},
		},
		{
			Name: "missing child",
			Corrupt: func(m *Map[string]) {
				m.root.refs[1].child = nil
			},
			Exp: []ViolationKind{BadPacking, BadSize},
		},
	} {
		tcase := tcase

		t.Run(tcase.Name, func(t *testing.T) {
			t.Parallel()

			m := newThreeKeyMap(t)
			tcase.Corrupt(m)

			violations := m.CheckIntegrity()
			assert.Equal(t, tcase.Exp, kinds(violations))

			err := m.Validate()
			require.Error(t, err)
			assert.Len(t, multierr.Errors(err), len(tcase.Exp))
		})
	}
}

func TestViolation_Error(t *testing.T) {
	t.Parallel()

	v := Violation{Kind: BadTerm, Depth: 1, Slot: 1, Addr: 0x22, Key: 0x23}

	assert.Equal(t,
		"sprintmap: bad term: depth=1 slot=1|01 addr=000012|00000022 key=000013|00000023",
		v.Error())
}
