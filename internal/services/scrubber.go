package services

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

// Scrubber clears repository secrets from memory and from the process
// environment. Only the first Scrub call has an effect.
type Scrubber struct {
	logger   *zap.Logger
	unsetenv func(string) error

	mu    sync.Mutex
	done  bool
	repos []*RepositoryConfig
}

func NewScrubber(logger *zap.Logger) *Scrubber {
	return &Scrubber{
		logger:   logger,
		unsetenv: os.Unsetenv,
	}
}

// Track registers a loaded config. A config tracked after Scrub already ran
// is zeroed right away.
func (s *Scrubber) Track(repo *RepositoryConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		s.scrubRepository(repo)
		return
	}
	s.repos = append(s.repos, repo)
}

func (s *Scrubber) Scrub() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	s.done = true

	for _, key := range ManagedKeys {
		s.unset(key)
	}
	for _, repo := range s.repos {
		s.scrubRepository(repo)
	}
	s.repos = nil

	s.logger.Debug("repository environment scrubbed")
}

func (s *Scrubber) Scrubbed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Scrubber) scrubRepository(repo *RepositoryConfig) {
	for key := range repo.Extra {
		s.unset(key)
	}
	repo.Scrub()
}

func (s *Scrubber) unset(key string) {
	if err := s.unsetenv(key); err != nil {
		s.logger.Debug("failed to unset environment variable", zap.String("key", key), zap.Error(err))
	}
}
