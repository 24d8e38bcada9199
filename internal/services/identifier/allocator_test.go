package identifier

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/openfest/gatekeeper/internal/dependencies/mocks"
	"github.com/openfest/gatekeeper/internal/dependencies/random"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/storage/memory"
)

type AllocatorSuite struct {
	suite.Suite
	allocator *Allocator
	random    *mocks.MockRandom
	ctx       context.Context
}

func TestAllocatorSuite(t *testing.T) {
	suite.Run(t, new(AllocatorSuite))
}

func (s *AllocatorSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.allocator = New(memory.New(), s.random)
	s.ctx = context.Background()
}

func (s *AllocatorSuite) TestAllocate() {
	s.random.QueueString("AB23CD")

	id, err := s.allocator.Allocate(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ParticipantID("AB23CD"), id)
}

func (s *AllocatorSuite) TestAllocateRetriesOnCollision() {
	s.random.QueueString("AB23CD", "AB23CD", "EF45GH")

	first, err := s.allocator.Allocate(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ParticipantID("AB23CD"), first)

	// Second allocation draws the same identifier, then retries
	second, err := s.allocator.Allocate(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ParticipantID("EF45GH"), second)
}

func (s *AllocatorSuite) TestAllocateExhausted() {
	s.random.QueueString("AB23CD")
	_, err := s.allocator.Allocate(s.ctx)
	s.Require().NoError(err)

	// Every subsequent draw collides
	for i := 0; i < maxAttempts; i++ {
		s.random.QueueString("AB23CD")
	}

	_, err = s.allocator.Allocate(s.ctx)
	s.ErrorIs(err, model.ErrIdentifierExhausted)
}

func (s *AllocatorSuite) TestClaim() {
	err := s.allocator.Claim(s.ctx, "ROSTER1")
	s.Require().NoError(err)

	err = s.allocator.Claim(s.ctx, "ROSTER1")
	s.ErrorIs(err, model.ErrIdentifierTaken)
}

func (s *AllocatorSuite) TestConcurrentAllocationsUnique() {
	// Real randomness: collisions here must be resolved by the claim, not
	// by queued test values
	allocator := New(memory.New(), random.New())

	const n = 200
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[model.ParticipantID]struct{}, n)
	)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			id, err := allocator.Allocate(s.ctx)
			s.NoError(err)
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Len(ids, n)
}

func (s *AllocatorSuite) TestConcurrentClaimSingleWinner() {
	const n = 100
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			err := s.allocator.Claim(s.ctx, "AB23CD")
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			s.ErrorIs(err, model.ErrIdentifierTaken)
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
}

func (s *AllocatorSuite) TestClaimedIdentifierBlocksAllocation() {
	s.Require().NoError(s.allocator.Claim(s.ctx, "AB23CD"))

	s.random.QueueString("AB23CD", "EF45GH")

	id, err := s.allocator.Allocate(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ParticipantID("EF45GH"), id)
}
