package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"retro-board-be/internal/entity"
	"retro-board-be/internal/repository/contract"
	"retro-board-be/internal/repository/specification"
	"retro-board-be/internal/repository/unitofwork"
	"retro-board-be/pkg/events"
	"retro-board-be/pkg/lock"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for postgres. A transaction works on a
// copy of the rows and swaps it in on commit.
type fakeStore struct {
	mu     sync.Mutex
	retros []*entity.Retrospective
	items  []*entity.RetrospectiveItem
	users  []*entity.User

	creates      int
	failCreateAt int // 1-based item create that fails, 0 = never
	updates      int
	failUpdateAt int // 1-based cluster label update that fails, 0 = never
	lockedReads  int // item reads issued inside a transaction with ForUpdate
	findErr      error
}

type fakeRows struct {
	items []*entity.RetrospectiveItem
	users []*entity.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) addRetro() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &entity.Retrospective{Id: uuid.New(), Title: "Sprint", Status: entity.RetrospectiveStatusActive, CreatedAt: time.Now()}
	s.retros = append(s.retros, r)
	return r.Id
}

func (s *fakeStore) addItem(retroId uuid.UUID, category entity.Category, content string) *entity.RetrospectiveItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := &entity.RetrospectiveItem{
		Id:              uuid.New(),
		RetrospectiveId: retroId,
		Category:        category,
		Content:         content,
		CreatedAt:       time.Now(),
	}
	s.items = append(s.items, item)
	return item
}

func (s *fakeStore) addUser(username string) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &entity.User{Id: uuid.New(), Username: username, Email: username + "@example.com", IsActive: true}
	s.users = append(s.users, u)
	return u
}

func (s *fakeStore) snapshot() *fakeRows {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := &fakeRows{}
	for _, i := range s.items {
		c := *i
		rows.items = append(rows.items, &c)
	}
	for _, u := range s.users {
		c := *u
		rows.users = append(rows.users, &c)
	}
	return rows
}

func (s *fakeStore) itemsOf(retroId uuid.UUID, category entity.Category) []*entity.RetrospectiveItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.RetrospectiveItem
	for _, i := range s.items {
		if i.RetrospectiveId == retroId && i.Category == category {
			out = append(out, i)
		}
	}
	return out
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeUnitOfWork struct {
	store *fakeStore
	tx    *fakeRows
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("transaction already started")
	}
	u.tx = u.store.snapshot()
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if u.tx == nil {
		return errors.New("no transaction to commit")
	}
	u.store.mu.Lock()
	u.store.items = u.tx.items
	u.store.users = u.tx.users
	u.store.mu.Unlock()
	u.tx = nil
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if u.tx == nil {
		return errors.New("no transaction to rollback")
	}
	u.tx = nil
	return nil
}

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{uow: u}
}

func (u *fakeUnitOfWork) RetrospectiveRepository() contract.RetrospectiveRepository {
	return &fakeRetroRepo{store: u.store}
}

func (u *fakeUnitOfWork) RetrospectiveItemRepository() contract.RetrospectiveItemRepository {
	return &fakeItemRepo{uow: u}
}

// rows runs fn against the transaction copy, or the committed rows outside a transaction.
func (u *fakeUnitOfWork) rows(fn func(r *fakeRows)) {
	if u.tx != nil {
		fn(u.tx)
		return
	}
	u.store.mu.Lock()
	r := &fakeRows{items: u.store.items, users: u.store.users}
	fn(r)
	u.store.items = r.items
	u.store.users = r.users
	u.store.mu.Unlock()
}

type fakeRetroRepo struct {
	store *fakeStore
}

func (r *fakeRetroRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Retrospective, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.findErr != nil {
		return nil, r.store.findErr
	}
	for _, retro := range r.store.retros {
		if matchesRetro(retro, specs) {
			c := *retro
			return &c, nil
		}
	}
	return nil, nil
}

func matchesRetro(r *entity.Retrospective, specs []specification.Specification) bool {
	for _, spec := range specs {
		if s, ok := spec.(specification.ByID); ok && r.Id != s.ID {
			return false
		}
	}
	return true
}

type fakeItemRepo struct {
	uow *fakeUnitOfWork
}

func matchesItem(i *entity.RetrospectiveItem, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if i.Id != s.ID {
				return false
			}
		case specification.ByRetrospectiveID:
			if i.RetrospectiveId != s.RetrospectiveID {
				return false
			}
		case specification.ByCategory:
			if i.Category != s.Category {
				return false
			}
		}
	}
	return true
}

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.RetrospectiveItem) error {
	r.uow.store.mu.Lock()
	r.uow.store.creates++
	fail := r.uow.store.failCreateAt != 0 && r.uow.store.creates == r.uow.store.failCreateAt
	r.uow.store.mu.Unlock()
	if fail {
		return errors.New("insert failed")
	}

	item.Id = uuid.New()
	item.CreatedAt = time.Now()
	c := *item
	r.uow.rows(func(rows *fakeRows) {
		rows.items = append(rows.items, &c)
	})
	return nil
}

func (r *fakeItemRepo) UpdateClusterId(ctx context.Context, id uuid.UUID, clusterId int) error {
	r.uow.store.mu.Lock()
	r.uow.store.updates++
	fail := r.uow.store.failUpdateAt != 0 && r.uow.store.updates == r.uow.store.failUpdateAt
	r.uow.store.mu.Unlock()
	if fail {
		return errors.New("update failed")
	}

	found := false
	r.uow.rows(func(rows *fakeRows) {
		for _, i := range rows.items {
			if i.Id == id {
				i.ClusterId = clusterId
				found = true
			}
		}
	})
	if !found {
		return errors.New("record not found")
	}
	return nil
}

func (r *fakeItemRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RetrospectiveItem, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeItemRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetrospectiveItem, error) {
	for _, spec := range specs {
		if _, ok := spec.(specification.ForUpdate); ok && r.uow.tx != nil {
			r.uow.store.mu.Lock()
			r.uow.store.lockedReads++
			r.uow.store.mu.Unlock()
		}
	}

	var out []*entity.RetrospectiveItem
	r.uow.rows(func(rows *fakeRows) {
		for _, i := range rows.items {
			if matchesItem(i, specs) {
				c := *i
				out = append(out, &c)
			}
		}
	})
	return out, nil
}

func (r *fakeItemRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeUserRepo struct {
	uow *fakeUnitOfWork
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	var err error
	r.uow.rows(func(rows *fakeRows) {
		for _, u := range rows.users {
			if u.Username == user.Username || u.Email == user.Email {
				err = errors.New("duplicate key")
				return
			}
		}
		user.Id = uuid.New()
		user.CreatedAt = time.Now()
		c := *user
		rows.users = append(rows.users, &c)
	})
	return err
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.uow.rows(func(rows *fakeRows) {
		kept := rows.users[:0:0]
		for _, u := range rows.users {
			if u.Id != id {
				kept = append(kept, u)
			}
		}
		rows.users = kept
		// author_id is ON DELETE SET NULL
		for _, i := range rows.items {
			if i.AuthorId != nil && *i.AuthorId == id {
				i.AuthorId = nil
			}
		}
	})
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	if r.uow.store.findErr != nil {
		return nil, r.uow.store.findErr
	}
	var out *entity.User
	r.uow.rows(func(rows *fakeRows) {
		for _, u := range rows.users {
			if matchesUser(u, specs) {
				c := *u
				out = &c
				return
			}
		}
	})
	return out, nil
}

func matchesUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByUsername:
			if u.Username != s.Username {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		}
	}
	return true
}

// fakeEncoder returns canned vectors keyed by text.
type fakeEncoder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (e *fakeEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := e.vectors[t]
		if !ok {
			return nil, errors.New("no vector for " + t)
		}
		out[i] = v
	}
	return out, nil
}

func (e *fakeEncoder) Model() string {
	return "fake"
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// heldLocker reports every key as held.
type heldLocker struct{}

func (heldLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (lock.Lease, error) {
	return nil, lock.ErrLockHeld
}
