package listview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type rec struct {
	ID   int64
	Name string
}

func newRecStore(items ...rec) *Store[rec, int64] {
	s := NewStore(func(r rec) int64 { return r.ID })
	s.Reset(items)
	return s
}

func TestStore_InsertUsesServerRecord(t *testing.T) {
	s := newRecStore(rec{ID: 1, Name: "a"})

	s.Insert(rec{ID: 42, Name: "from server"})

	require.Equal(t, 2, s.Len())
	got, ok := s.Get(42)
	require.True(t, ok)
	require.Equal(t, "from server", got.Name)
}

func TestStore_InsertExistingKeyKeepsOneEntry(t *testing.T) {
	s := newRecStore(rec{ID: 1, Name: "a"}, rec{ID: 2, Name: "b"})

	s.Insert(rec{ID: 1, Name: "again"})

	require.Equal(t, []rec{{ID: 1, Name: "again"}, {ID: 2, Name: "b"}}, s.Items())
}

func TestStore_ReplaceByKey(t *testing.T) {
	s := newRecStore(rec{ID: 1, Name: "a"}, rec{ID: 2, Name: "b"})

	require.True(t, s.Replace(rec{ID: 2, Name: "B"}))
	require.Equal(t, []rec{{ID: 1, Name: "a"}, {ID: 2, Name: "B"}}, s.Items())

	require.False(t, s.Replace(rec{ID: 9, Name: "x"}))
	require.Equal(t, 2, s.Len())
}

func TestStore_RemoveKnownAndUnknown(t *testing.T) {
	s := newRecStore(rec{ID: 1}, rec{ID: 2}, rec{ID: 3})

	require.True(t, s.Remove(2))
	require.Equal(t, []rec{{ID: 1}, {ID: 3}}, s.Items())

	require.False(t, s.Remove(99))
	require.Equal(t, 2, s.Len())
}

func TestStore_ItemsIsACopy(t *testing.T) {
	s := newRecStore(rec{ID: 1, Name: "a"})
	items := s.Items()
	items[0].Name = "mutated"

	got, _ := s.Get(1)
	require.Equal(t, "a", got.Name)
}
