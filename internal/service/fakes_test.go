package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Amos-136/maditrack/internal/domain"
	"github.com/Amos-136/maditrack/internal/repository"
	"github.com/Amos-136/maditrack/internal/store"
)

// Recording in-memory doubles for the storage and auth collaborators.

type fakeOrgsRepo struct {
	mu     sync.Mutex
	orgs   map[string]*domain.Organization
	nextID int

	createErr error
	countErr  error
	deleteErr error

	createCalls int
	countCalls  int
	deleteCalls []string

	listOrphansResult []*domain.Organization
	listOrphansErr    error
}

func newFakeOrgsRepo() *fakeOrgsRepo {
	return &fakeOrgsRepo{orgs: map[string]*domain.Organization{}}
}

func (f *fakeOrgsRepo) CreateOrganization(ctx context.Context, org *domain.Organization) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextID++
	id := fmt.Sprintf("org-%d", f.nextID)
	stored := *org
	stored.OrgID = id
	stored.CreatedAt = time.Now()
	f.orgs[id] = &stored
	return id, nil
}

func (f *fakeOrgsRepo) GetOrganization(ctx context.Context, orgID string) (*domain.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	org, ok := f.orgs[orgID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return org, nil
}

func (f *fakeOrgsRepo) CountRecentByEmail(ctx context.Context, email string, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countCalls++
	if f.countErr != nil {
		return 0, f.countErr
	}
	count := 0
	for _, org := range f.orgs {
		if org.Email == email && !org.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrgsRepo) DeleteOrganization(ctx context.Context, orgID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, orgID)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.orgs[orgID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.orgs, orgID)
	return nil
}

func (f *fakeOrgsRepo) ListOrphans(ctx context.Context, before time.Time, limit int) ([]*domain.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listOrphansResult, f.listOrphansErr
}

func (f *fakeOrgsRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orgs)
}

type fakePrincipalsRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.Principal
	nextID  int

	createErr   error
	createCalls int
}

func newFakePrincipalsRepo() *fakePrincipalsRepo {
	return &fakePrincipalsRepo{byEmail: map[string]*domain.Principal{}}
}

func (f *fakePrincipalsRepo) CreatePrincipal(ctx context.Context, p *domain.Principal) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return "", f.createErr
	}
	key := strings.ToLower(p.Email)
	if _, ok := f.byEmail[key]; ok {
		// Same hard guarantee the unique lower(email) index provides.
		return "", repository.ErrEmailAlreadyUsed
	}
	f.nextID++
	stored := *p
	stored.PrincipalID = fmt.Sprintf("principal-%d", f.nextID)
	stored.CreatedAt = time.Now()
	f.byEmail[key] = &stored
	return stored.PrincipalID, nil
}

func (f *fakePrincipalsRepo) GetPrincipalByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePrincipalsRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byEmail)
}

type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) HashPassword(ctx context.Context, password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) VerifyPassword(ctx context.Context, password, encodedHash string) (bool, error) {
	return encodedHash == "hashed:"+password, nil
}

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (m *memKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
