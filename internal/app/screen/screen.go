// Package screen holds the per-screen state of the console: the loaded
// collection, the active filter and sort, the form draft and the busy and
// error flags. Delivery layers drive it and render its rows; it never renders.
package screen

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gestion-bot/pkg/listview"
)

var (
	ErrBusy      = errors.New("screen: another change is still running")
	ErrKeyLocked = errors.New("screen: the key of an existing record cannot change")
	ErrNotFound  = errors.New("screen: no record with that key")
)

// Resource is the remote collection a screen manages.
type Resource[T any, K comparable, F any] interface {
	KeyOf(rec T) K
	KeyField() string
	Blank() F
	FormOf(rec T) F
	SetField(form *F, field, value string) error
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, form F) (T, error)
	Update(ctx context.Context, key K, form F) (T, error)
	Delete(ctx context.Context, key K) error
}

// State is a read-only snapshot for rendering.
type State[K comparable] struct {
	Name    string
	Loaded  bool
	Busy    bool
	Count   int
	Query   listview.Query
	Mode    listview.Mode
	Editing K
	Err     error
}

type Screen[T any, K comparable, F any] struct {
	name   string
	res    Resource[T, K, F]
	schema *listview.Schema[T]
	log    logrus.FieldLogger

	mu       sync.Mutex
	store    *listview.Store[T, K]
	modal    *listview.Modal[F, K]
	query    listview.Query
	loaded   bool
	mutating bool
	lastErr  error

	loadSeq  uint64
	nextCall uint64
	inflight map[uint64]context.CancelFunc
	loadCall uint64
}

func New[T any, K comparable, F any](name string, res Resource[T, K, F], schema *listview.Schema[T], log logrus.FieldLogger) *Screen[T, K, F] {
	return &Screen[T, K, F]{
		name:     name,
		res:      res,
		schema:   schema,
		log:      log.WithField("screen", name),
		store:    listview.NewStore(res.KeyOf),
		modal:    listview.NewModal[F, K](res.Blank),
		inflight: make(map[uint64]context.CancelFunc),
	}
}

func (s *Screen[T, K, F]) Name() string { return s.name }

func (s *Screen[T, K, F]) Schema() *listview.Schema[T] { return s.schema }

func (s *Screen[T, K, F]) KeyOf(rec T) K { return s.res.KeyOf(rec) }

// begin registers a cancellable call. Callers hold s.mu.
func (s *Screen[T, K, F]) begin(ctx context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(ctx)
	s.nextCall++
	id := s.nextCall
	s.inflight[id] = cancel
	return ctx, id
}

// end releases a call. Callers hold s.mu.
func (s *Screen[T, K, F]) end(id uint64) {
	if cancel, ok := s.inflight[id]; ok {
		cancel()
		delete(s.inflight, id)
	}
}

// Load fetches the whole collection. A newer Load supersedes an older one:
// the older is cancelled and its response, if it still arrives, is dropped.
func (s *Screen[T, K, F]) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.loadCall != 0 {
		s.end(s.loadCall)
	}
	s.loadSeq++
	seq := s.loadSeq
	cctx, id := s.begin(ctx)
	s.loadCall = id
	s.mu.Unlock()

	items, err := s.res.List(cctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	cancelled := cctx.Err() != nil
	s.end(id)
	if s.loadCall == id {
		s.loadCall = 0
	}
	if seq != s.loadSeq {
		return context.Canceled
	}
	if cancelled {
		return cctx.Err()
	}
	if err != nil {
		s.lastErr = err
		s.log.WithError(err).Warn("[screen] load failed")
		return err
	}
	s.store.Reset(items)
	s.loaded = true
	s.lastErr = nil
	s.log.WithField("count", len(items)).Debug("[screen] loaded")
	return nil
}

func (s *Screen[T, K, F]) SetFilterField(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schema.Field(key); !ok {
		return errors.Wrapf(listview.ErrUnknownField, "%q", key)
	}
	s.query.FilterField = key
	return nil
}

func (s *Screen[T, K, F]) SetFilterText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.FilterText = text
}

// ToggleSort cycles field through ascending, descending and unsorted.
func (s *Screen[T, K, F]) ToggleSort(field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schema.Field(field); !ok {
		return errors.Wrapf(listview.ErrUnknownField, "%q", field)
	}
	s.query.Sort = s.query.Sort.Toggle(field)
	return nil
}

func (s *Screen[T, K, F]) Query() listview.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.query
	q.Sort = append(listview.Criteria(nil), s.query.Sort...)
	return q
}

// SetQuery restores a saved query after checking its field keys.
func (s *Screen[T, K, F]) SetQuery(q listview.Query) error {
	if err := s.schema.Validate(q); err != nil {
		return err
	}
	if len(q.Sort) > listview.MaxCriteria {
		return errors.Errorf("screen: at most %d sort fields", listview.MaxCriteria)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
	s.query.Sort = append(listview.Criteria(nil), q.Sort...)
	return nil
}

// Rows is the filtered and sorted view of the collection.
func (s *Screen[T, K, F]) Rows() ([]T, error) {
	s.mu.Lock()
	items, q := s.store.Items(), s.query
	s.mu.Unlock()
	return s.schema.Apply(items, q)
}

func (s *Screen[T, K, F]) Get(key K) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(key)
}

func (s *Screen[T, K, F]) State() State[K] {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, _ := s.modal.EditingKey()
	q := s.query
	q.Sort = append(listview.Criteria(nil), s.query.Sort...)
	return State[K]{
		Name:    s.name,
		Loaded:  s.loaded,
		Busy:    len(s.inflight) > 0,
		Count:   s.store.Len(),
		Query:   q,
		Mode:    s.modal.Mode(),
		Editing: key,
		Err:     s.lastErr,
	}
}

func (s *Screen[T, K, F]) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Screen[T, K, F]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

func (s *Screen[T, K, F]) OpenCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal.OpenCreate()
	s.lastErr = nil
}

// OpenEdit copies the record with key into a fresh draft.
func (s *Screen[T, K, F]) OpenEdit(key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.store.Get(key)
	if !ok {
		return ErrNotFound
	}
	s.modal.OpenEdit(key, s.res.FormOf(rec))
	s.lastErr = nil
	return nil
}

// SetField edits the draft only.
func (s *Screen[T, K, F]) SetField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modal.Mode() == listview.Editing && field == s.res.KeyField() {
		return ErrKeyLocked
	}
	return s.modal.Update(func(f *F) error {
		return s.res.SetField(f, field, value)
	})
}

func (s *Screen[T, K, F]) Draft() (F, listview.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modal.Draft(), s.modal.Mode()
}

func (s *Screen[T, K, F]) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal.Close()
}

// Submit sends the draft as a create or an update. On success the server's
// record is reconciled into the collection and the form closes; on failure
// the form stays open with the draft intact.
func (s *Screen[T, K, F]) Submit(ctx context.Context) (T, error) {
	var zero T
	s.mu.Lock()
	if !s.modal.IsOpen() {
		s.mu.Unlock()
		return zero, listview.ErrModalClosed
	}
	if s.mutating {
		s.mu.Unlock()
		return zero, ErrBusy
	}
	draft := s.modal.Draft()
	key, editing := s.modal.EditingKey()
	s.mutating = true
	cctx, id := s.begin(ctx)
	s.mu.Unlock()

	var (
		rec T
		err error
	)
	if editing {
		rec, err = s.res.Update(cctx, key, draft)
	} else {
		rec, err = s.res.Create(cctx, draft)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cancelled := cctx.Err() != nil
	s.end(id)
	s.mutating = false
	if cancelled {
		return zero, cctx.Err()
	}
	if err != nil {
		s.lastErr = err
		s.log.WithError(err).Warn("[screen] submit failed")
		return zero, err
	}

	if editing {
		if !s.store.Replace(rec) {
			s.log.WithField("key", s.res.KeyOf(rec)).Warn("[screen] updated record not in collection")
		}
	} else {
		s.store.Insert(rec)
	}
	s.modal.Close()
	s.lastErr = nil
	return rec, nil
}

// Delete removes the record with key on the server and then locally.
func (s *Screen[T, K, F]) Delete(ctx context.Context, key K) error {
	s.mu.Lock()
	if s.mutating {
		s.mu.Unlock()
		return ErrBusy
	}
	if _, ok := s.store.Get(key); !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.mutating = true
	cctx, id := s.begin(ctx)
	s.mu.Unlock()

	err := s.res.Delete(cctx, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	cancelled := cctx.Err() != nil
	s.end(id)
	s.mutating = false
	if cancelled {
		return cctx.Err()
	}
	if err != nil {
		s.lastErr = err
		s.log.WithError(err).Warn("[screen] delete failed")
		return err
	}
	s.store.Remove(key)
	if k, editing := s.modal.EditingKey(); editing && k == key {
		s.modal.Close()
	}
	s.lastErr = nil
	return nil
}

// Leave cancels every call still running and discards the draft.
func (s *Screen[T, K, F]) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.inflight {
		s.end(id)
	}
	s.loadCall = 0
	s.modal.Close()
	s.lastErr = nil
}
