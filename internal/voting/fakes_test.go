package voting

import (
	"context"
	"sync"
	"time"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
)

type targetKey struct {
	id   int64
	kind domain.TargetKind
}

type voteKey struct {
	voter  string
	target targetKey
}

// fakeStorage is an in-memory domain.VoteStorage. Transactions serialize on a
// per-target mutex taken by TargetExists, mirroring the row lock the real
// storage takes.
type fakeStorage struct {
	mu      sync.Mutex
	targets map[targetKey]int // target -> cached total
	votes   map[voteKey]domain.Vote
	nextID  int64

	// conflicts injects ErrConcurrencyConflict for the first n transactions.
	conflicts int

	locks   map[targetKey]*sync.Mutex
	locksMu sync.Mutex
}

func newFakeStorage(targets ...targetKey) *fakeStorage {
	s := &fakeStorage{
		targets: make(map[targetKey]int),
		votes:   make(map[voteKey]domain.Vote),
		locks:   make(map[targetKey]*sync.Mutex),
	}
	for _, t := range targets {
		s.targets[t] = 0
	}
	return s
}

func (s *fakeStorage) InVoteTx(ctx context.Context, fn func(domain.LedgerStore) error) error {
	s.mu.Lock()
	if s.conflicts > 0 {
		s.conflicts--
		s.mu.Unlock()
		return domain.ErrConcurrencyConflict
	}
	s.mu.Unlock()

	store := &fakeLedgerStore{storage: s}
	defer store.unlock()
	return fn(store)
}

func (s *fakeStorage) targetLock(key targetKey) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	if _, ok := s.locks[key]; !ok {
		s.locks[key] = &sync.Mutex{}
	}
	return s.locks[key]
}

func (s *fakeStorage) total(id int64, kind domain.TargetKind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.targets[targetKey{id, kind}]
}

func (s *fakeStorage) voteCount(id int64, kind domain.TargetKind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.votes {
		if k.target == (targetKey{id, kind}) {
			n++
		}
	}
	return n
}

func (s *fakeStorage) vote(voter string, id int64, kind domain.TargetKind) (domain.Vote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.votes[voteKey{voter, targetKey{id, kind}}]
	return v, ok
}

// fakeLedgerStore implements domain.LedgerStore against fakeStorage,
// holding the per-target lock from TargetExists until the transaction ends.
type fakeLedgerStore struct {
	storage *fakeStorage
	held    *sync.Mutex
}

func (f *fakeLedgerStore) unlock() {
	if f.held != nil {
		f.held.Unlock()
		f.held = nil
	}
}

func (f *fakeLedgerStore) TargetExists(ctx context.Context, targetID int64, kind domain.TargetKind) (bool, error) {
	key := targetKey{targetID, kind}
	lock := f.storage.targetLock(key)
	lock.Lock()
	f.held = lock

	f.storage.mu.Lock()
	defer f.storage.mu.Unlock()
	_, ok := f.storage.targets[key]
	return ok, nil
}

func (f *fakeLedgerStore) GetVote(ctx context.Context, voterID string, targetID int64, kind domain.TargetKind) (*domain.Vote, error) {
	f.storage.mu.Lock()
	defer f.storage.mu.Unlock()
	v, ok := f.storage.votes[voteKey{voterID, targetKey{targetID, kind}}]
	if !ok {
		return nil, domain.ErrVoteNotFound
	}
	return &v, nil
}

func (f *fakeLedgerStore) InsertVote(ctx context.Context, voterID string, targetID int64, kind domain.TargetKind, value domain.VoteValue) error {
	f.storage.mu.Lock()
	defer f.storage.mu.Unlock()
	f.storage.nextID++
	f.storage.votes[voteKey{voterID, targetKey{targetID, kind}}] = domain.Vote{
		ID:        f.storage.nextID,
		VoterID:   voterID,
		TargetID:  targetID,
		Kind:      kind,
		Value:     value,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeLedgerStore) UpdateVoteValue(ctx context.Context, voterID string, targetID int64, kind domain.TargetKind, value domain.VoteValue) error {
	f.storage.mu.Lock()
	defer f.storage.mu.Unlock()
	key := voteKey{voterID, targetKey{targetID, kind}}
	v := f.storage.votes[key]
	v.Value = value
	f.storage.votes[key] = v
	return nil
}

func (f *fakeLedgerStore) DeleteVote(ctx context.Context, voterID string, targetID int64, kind domain.TargetKind) error {
	f.storage.mu.Lock()
	defer f.storage.mu.Unlock()
	delete(f.storage.votes, voteKey{voterID, targetKey{targetID, kind}})
	return nil
}

func (f *fakeLedgerStore) ListVotes(ctx context.Context, targetID int64, kind domain.TargetKind) ([]domain.Vote, error) {
	f.storage.mu.Lock()
	defer f.storage.mu.Unlock()
	votes := make([]domain.Vote, 0)
	for k, v := range f.storage.votes {
		if k.target == (targetKey{targetID, kind}) {
			votes = append(votes, v)
		}
	}
	return votes, nil
}

func (f *fakeLedgerStore) WriteTargetTotal(ctx context.Context, targetID int64, kind domain.TargetKind, total int) error {
	f.storage.mu.Lock()
	defer f.storage.mu.Unlock()
	key := targetKey{targetID, kind}
	if _, ok := f.storage.targets[key]; !ok {
		return domain.ErrTargetNotFound
	}
	f.storage.targets[key] = total
	return nil
}
