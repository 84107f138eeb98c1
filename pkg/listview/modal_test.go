package listview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type form struct {
	Nombre string
	Nivel  string
}

func blankForm() form { return form{Nivel: "0"} }

func TestModal_CreateLifecycle(t *testing.T) {
	m := NewModal[form, int64](blankForm)
	require.Equal(t, Closed, m.Mode())

	m.OpenCreate()
	require.Equal(t, Creating, m.Mode())
	require.Equal(t, blankForm(), m.Draft())
	_, editing := m.EditingKey()
	require.False(t, editing)

	require.NoError(t, m.Update(func(f *form) error { f.Nombre = "Analista"; return nil }))
	require.Equal(t, "Analista", m.Draft().Nombre)

	m.Close()
	require.Equal(t, Closed, m.Mode())
	require.Equal(t, blankForm(), m.Draft())
}

func TestModal_EditKeepsKeyUntilClose(t *testing.T) {
	m := NewModal[form, int64](blankForm)

	m.OpenEdit(7, form{Nombre: "Gerente", Nivel: "3"})
	key, editing := m.EditingKey()
	require.True(t, editing)
	require.Equal(t, int64(7), key)
	require.Equal(t, "Gerente", m.Draft().Nombre)

	m.Close()
	key, editing = m.EditingKey()
	require.False(t, editing)
	require.Zero(t, key)
}

func TestModal_UpdateWhileClosed(t *testing.T) {
	m := NewModal[form, int64](blankForm)
	err := m.Update(func(f *form) error { return nil })
	require.ErrorIs(t, err, ErrModalClosed)
}

func TestModal_FailedUpdateLeavesDraft(t *testing.T) {
	m := NewModal[form, int64](blankForm)
	m.OpenCreate()

	err := m.Update(func(f *form) error {
		f.Nombre = "half-applied"
		return errors.New("bad value")
	})
	require.Error(t, err)
	require.Equal(t, blankForm(), m.Draft())
}
