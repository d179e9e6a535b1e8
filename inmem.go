package roamstay

import "sync"

// inmemRepository is the test double for the mongo-backed store. It copies
// records on the way in and out, and enforces email uniqueness the way the
// unique index does.
type inmemRepository[P Principal] struct {
	mu       sync.RWMutex
	accounts map[ID]P
}

func NewInMemRepository[P Principal]() Repository[P] {
	return &inmemRepository[P]{accounts: map[ID]P{}}
}

func (repo *inmemRepository[P]) FindByID(id ID) (P, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var zero P
	p, ok := repo.accounts[id]
	if !ok {
		return zero, ErrNotFound
	}
	return p.clone().(P), nil
}

func (repo *inmemRepository[P]) FindByEmail(email string) (P, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var zero P
	for _, p := range repo.accounts {
		if p.AccountEmail() == email {
			return p.clone().(P), nil
		}
	}
	return zero, ErrNotFound
}

func (repo *inmemRepository[P]) Store(p P) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.accounts {
		if existing.AccountEmail() == p.AccountEmail() {
			return ErrEmailInUse
		}
	}
	repo.accounts[p.AccountID()] = p.clone().(P)
	return nil
}

func (repo *inmemRepository[P]) Update(p P) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.accounts[p.AccountID()]; !ok {
		return ErrNotFound
	}
	for id, existing := range repo.accounts {
		if id != p.AccountID() && existing.AccountEmail() == p.AccountEmail() {
			return ErrEmailInUse
		}
	}
	repo.accounts[p.AccountID()] = p.clone().(P)
	return nil
}

func (repo *inmemRepository[P]) Delete(id ID) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.accounts[id]; !ok {
		return ErrNotFound
	}
	delete(repo.accounts, id)
	return nil
}
