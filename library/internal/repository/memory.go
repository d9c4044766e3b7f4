package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// InMemoryRepository is a process-local record store. Lending transactions
// lock individual books, so operations on different books run in parallel.
type InMemoryRepository struct {
	mu           sync.RWMutex
	curators     map[string]model.Curator
	books        map[string]model.BookItem
	bookOrder    []string
	acquisitions []model.AcquisitionRequest
	borrows      []model.BorrowRequest
	borrowIdx    map[string]int

	bookLocks *keyedMutex
	now       func() time.Time
}

var _ Repository = (*InMemoryRepository)(nil)

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		curators:  make(map[string]model.Curator),
		books:     make(map[string]model.BookItem),
		borrowIdx: make(map[string]int),
		bookLocks: newKeyedMutex(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *InMemoryRepository) CreateCurator(_ context.Context, c model.Curator) (model.Curator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = uuid.NewString()
	c.Version = 1
	c.CreatedAt = r.now()
	c.Books = nil
	r.curators[c.ID] = c
	return c, nil
}

func (r *InMemoryRepository) GetCurator(_ context.Context, curatorID string) (model.Curator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.curators[curatorID]
	if !ok {
		return model.Curator{}, errors.Wrap(errs.ErrNotFound, "GetCurator")
	}
	return c, nil
}

func (r *InMemoryRepository) UpdatePublicNotice(_ context.Context, curatorID, text string, version *int) (model.Curator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.curators[curatorID]
	if !ok {
		return model.Curator{}, errors.Wrap(errs.ErrNotFound, "UpdatePublicNotice")
	}
	if version != nil && *version != c.Version {
		return model.Curator{}, errors.Wrap(errs.ErrConflict, "public notice was modified concurrently")
	}
	c.PublicNotice = text
	c.Version++
	r.curators[curatorID] = c
	return c, nil
}

func (r *InMemoryRepository) CreateBook(_ context.Context, b model.BookItem) (model.BookItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.curators[b.CuratorID]; !ok {
		return model.BookItem{}, errors.Wrap(errs.ErrValidation, "CreateBook: referenced record does not exist")
	}
	b.ID = uuid.NewString()
	b.Availability = model.AvailabilityAvailable
	b.CreatedAt = r.now()
	r.books[b.ID] = b
	r.bookOrder = append(r.bookOrder, b.ID)
	return b, nil
}

func (r *InMemoryRepository) GetBook(_ context.Context, bookID string) (model.BookItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[bookID]
	if !ok {
		return model.BookItem{}, errors.Wrap(errs.ErrNotFound, "GetBook")
	}
	return b, nil
}

func (r *InMemoryRepository) ListBooks(_ context.Context, curatorID string) ([]model.BookItem, error) {
	return r.filterBooks(func(b model.BookItem) bool { return b.CuratorID == curatorID }), nil
}

func (r *InMemoryRepository) FindBooks(_ context.Context, curatorID, isbn string) ([]model.BookItem, error) {
	return r.filterBooks(func(b model.BookItem) bool {
		return b.CuratorID == curatorID && b.ISBN != nil && *b.ISBN == isbn
	}), nil
}

func (r *InMemoryRepository) filterBooks(match func(model.BookItem) bool) []model.BookItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]model.BookItem, 0)
	for _, id := range r.bookOrder {
		if b := r.books[id]; match(b) {
			books = append(books, b)
		}
	}
	return books
}

func (r *InMemoryRepository) CreateAcquisitionRequest(_ context.Context, req model.AcquisitionRequest) (model.AcquisitionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.curators[req.CuratorID]; !ok {
		return model.AcquisitionRequest{}, errors.Wrap(errs.ErrValidation, "CreateAcquisitionRequest: referenced record does not exist")
	}
	req.ID = uuid.NewString()
	req.CreatedAt = r.now()
	r.acquisitions = append(r.acquisitions, req)
	return req, nil
}

func (r *InMemoryRepository) ListAcquisitionRequests(_ context.Context, curatorID string) ([]model.AcquisitionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.AcquisitionRequest, 0)
	for _, a := range r.acquisitions {
		if a.CuratorID == curatorID {
			items = append(items, a)
		}
	}
	return items, nil
}

func (r *InMemoryRepository) ListBorrowRequests(_ context.Context, curatorID string) ([]model.BorrowRequestView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.BorrowRequestView, 0)
	for _, br := range r.borrows {
		if br.CuratorID == curatorID {
			items = append(items, model.BorrowRequestView{BorrowRequest: br, Book: r.books[br.BookID]})
		}
	}
	return items, nil
}

func (r *InMemoryRepository) GetBorrowRequest(_ context.Context, requestID string) (model.BorrowRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.borrowIdx[requestID]
	if !ok {
		return model.BorrowRequest{}, errors.Wrap(errs.ErrNotFound, "GetBorrowRequest")
	}
	return r.borrows[i], nil
}

// WithinTx stages writes and applies them under a single store lock on commit.
func (r *InMemoryRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx LendingTx) error) error {
	tx := &memoryTx{
		r:            r,
		unlocks:      make(map[string]func()),
		availability: make(map[string]model.Availability),
		status:       make(map[string]model.BorrowStatus),
	}
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type memoryTx struct {
	r *InMemoryRepository

	unlocks      map[string]func()
	availability map[string]model.Availability
	status       map[string]model.BorrowStatus
	inserted     []model.BorrowRequest
}

func (t *memoryTx) LockBook(ctx context.Context, bookID string) (model.BookItem, error) {
	if _, held := t.unlocks[bookID]; !held {
		if _, err := t.r.GetBook(ctx, bookID); err != nil {
			return model.BookItem{}, errors.Wrap(errs.ErrNotFound, "LockBook")
		}
		unlock, err := t.r.bookLocks.lock(ctx, bookID)
		if err != nil {
			// the caller gave up waiting; the store itself is fine
			return model.BookItem{}, errors.Wrap(err, "LockBook")
		}
		t.unlocks[bookID] = unlock
	}
	b, err := t.r.GetBook(ctx, bookID)
	if err != nil {
		return model.BookItem{}, err
	}
	if a, ok := t.availability[bookID]; ok {
		b.Availability = a
	}
	return b, nil
}

func (t *memoryTx) SetAvailability(ctx context.Context, bookID string, a model.Availability) error {
	if !a.Valid() {
		return errors.Wrapf(errs.ErrValidation, "SetAvailability: unknown availability %q", a)
	}
	if _, held := t.unlocks[bookID]; !held {
		if _, err := t.LockBook(ctx, bookID); err != nil {
			return err
		}
	}
	t.availability[bookID] = a
	return nil
}

func (t *memoryTx) GetBorrowRequest(ctx context.Context, requestID string) (model.BorrowRequest, error) {
	for _, br := range t.inserted {
		if br.ID == requestID {
			return br, nil
		}
	}
	br, err := t.r.GetBorrowRequest(ctx, requestID)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	if s, ok := t.status[requestID]; ok {
		br.Status = s
	}
	return br, nil
}

// LockBorrowRequest relies on the book lock: a request's status only changes
// while its book is locked.
func (t *memoryTx) LockBorrowRequest(ctx context.Context, requestID string) (model.BorrowRequest, error) {
	br, err := t.GetBorrowRequest(ctx, requestID)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	if _, held := t.unlocks[br.BookID]; !held {
		if _, err := t.LockBook(ctx, br.BookID); err != nil {
			return model.BorrowRequest{}, err
		}
		return t.GetBorrowRequest(ctx, requestID)
	}
	return br, nil
}

func (t *memoryTx) InsertBorrowRequest(ctx context.Context, req model.BorrowRequest) (model.BorrowRequest, error) {
	if _, held := t.unlocks[req.BookID]; !held {
		if _, err := t.LockBook(ctx, req.BookID); err != nil {
			return model.BorrowRequest{}, err
		}
	}
	if t.hasActiveRequest(req.BookID) {
		return model.BorrowRequest{}, errors.Wrap(errs.ErrConflict, "InsertBorrowRequest")
	}

	now := t.r.now()
	req.ID = uuid.NewString()
	req.CreatedAt = now
	req.UpdatedAt = now
	t.inserted = append(t.inserted, req)
	return req, nil
}

func (t *memoryTx) SetBorrowStatus(ctx context.Context, requestID string, s model.BorrowStatus) error {
	for i := range t.inserted {
		if t.inserted[i].ID == requestID {
			t.inserted[i].Status = s
			return nil
		}
	}
	if _, err := t.LockBorrowRequest(ctx, requestID); err != nil {
		return err
	}
	t.status[requestID] = s
	return nil
}

func (t *memoryTx) hasActiveRequest(bookID string) bool {
	for _, br := range t.inserted {
		if br.BookID == bookID && br.Status.Active() {
			return true
		}
	}
	t.r.mu.RLock()
	defer t.r.mu.RUnlock()
	for _, br := range t.r.borrows {
		if br.BookID != bookID {
			continue
		}
		status := br.Status
		if s, ok := t.status[br.ID]; ok {
			status = s
		}
		if status.Active() {
			return true
		}
	}
	return false
}

func (t *memoryTx) commit() {
	r := t.r
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, a := range t.availability {
		b := r.books[id]
		b.Availability = a
		r.books[id] = b
	}
	for id, s := range t.status {
		i := r.borrowIdx[id]
		r.borrows[i].Status = s
		r.borrows[i].UpdatedAt = now
	}
	for _, br := range t.inserted {
		r.borrowIdx[br.ID] = len(r.borrows)
		r.borrows = append(r.borrows, br)
	}
}

func (t *memoryTx) release() {
	for id, unlock := range t.unlocks {
		unlock()
		delete(t.unlocks, id)
	}
}

// keyedMutex hands out one lock per key. An entry lives only while someone
// holds or waits for it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	ch   chan struct{}
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (k *keyedMutex) lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{ch: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		return func() {
			<-l.ch
			k.release(key, l)
		}, nil
	case <-ctx.Done():
		k.release(key, l)
		return nil, ctx.Err()
	}
}

func (k *keyedMutex) release(key string, l *keyedLock) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

func (k *keyedMutex) len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
