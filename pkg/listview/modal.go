package listview

import "github.com/pkg/errors"

var ErrModalClosed = errors.New("listview: form is not open")

type Mode int

const (
	Closed Mode = iota
	Creating
	Editing
)

func (m Mode) String() string {
	switch m {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return "closed"
	}
}

// Modal is the create/edit form lifecycle. The draft F is a value type so
// edits never reach the record it was copied from.
type Modal[F any, K comparable] struct {
	mode  Mode
	draft F
	key   K
	blank func() F
}

func NewModal[F any, K comparable](blank func() F) *Modal[F, K] {
	return &Modal[F, K]{draft: blank(), blank: blank}
}

func (m *Modal[F, K]) Mode() Mode { return m.mode }

func (m *Modal[F, K]) IsOpen() bool { return m.mode != Closed }

// OpenCreate starts a new record from defaults.
func (m *Modal[F, K]) OpenCreate() {
	var zero K
	m.mode = Creating
	m.draft = m.blank()
	m.key = zero
}

// OpenEdit starts editing the record identified by key, with draft copied from it.
func (m *Modal[F, K]) OpenEdit(key K, draft F) {
	m.mode = Editing
	m.draft = draft
	m.key = key
}

// Close resets the draft and forgets the edited record, whatever the reason.
func (m *Modal[F, K]) Close() {
	var zero K
	m.mode = Closed
	m.draft = m.blank()
	m.key = zero
}

func (m *Modal[F, K]) Draft() F { return m.draft }

// EditingKey reports the key of the record being edited.
func (m *Modal[F, K]) EditingKey() (K, bool) {
	return m.key, m.mode == Editing
}

// Update applies fn to the draft. The draft is left untouched when fn fails.
func (m *Modal[F, K]) Update(fn func(*F) error) error {
	if m.mode == Closed {
		return ErrModalClosed
	}
	next := m.draft
	if err := fn(&next); err != nil {
		return err
	}
	m.draft = next
	return nil
}
