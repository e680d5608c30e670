package services

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newCountingScrubber() (*Scrubber, map[string]int) {
	unset := map[string]int{}
	scrubber := NewScrubber(zap.NewNop())
	scrubber.unsetenv = func(key string) error {
		unset[key]++
		return nil
	}
	return scrubber, unset
}

func TestScrub(t *testing.T) {
	scrubber, unset := newCountingScrubber()
	ignore := true
	repo := &RepositoryConfig{
		Repository:   "s3:s3.amazonaws.com/acme-backups",
		PasswordFile: "/etc/resticw/password",
		RestPassword: "secret",
		IgnoreCert:   &ignore,
		Extra:        map[string]string{"AWS_SECRET_ACCESS_KEY": "wJalrXUtnFEMI"},
	}
	scrubber.Track(repo)

	scrubber.Scrub()
	scrubber.Scrub()

	assert.True(t, scrubber.Scrubbed())
	assert.Equal(t, RepositoryConfig{}, *repo)
	assert.Len(t, unset, len(ManagedKeys)+1)
	for key, count := range unset {
		assert.Equal(t, 1, count, key)
	}
	assert.Equal(t, 1, unset["AWS_SECRET_ACCESS_KEY"])
}

func TestScrubWithoutRepository(t *testing.T) {
	scrubber, unset := newCountingScrubber()

	scrubber.Scrub()

	assert.Len(t, unset, len(ManagedKeys))
}

func TestTrackAfterScrub(t *testing.T) {
	scrubber, unset := newCountingScrubber()
	scrubber.Scrub()

	repo := &RepositoryConfig{Repository: "/srv/restic", Extra: map[string]string{"B2_ACCOUNT_KEY": "K001"}}
	scrubber.Track(repo)

	assert.Empty(t, repo.Repository)
	assert.Equal(t, 1, unset["B2_ACCOUNT_KEY"])
	assert.Equal(t, 1, unset[KeyRepository])
}

func TestScrubIgnoresUnsetErrors(t *testing.T) {
	scrubber := NewScrubber(zap.NewNop())
	scrubber.unsetenv = func(string) error { return errors.New("invalid argument") }
	repo := &RepositoryConfig{RestPassword: "secret"}
	scrubber.Track(repo)

	scrubber.Scrub()

	assert.Empty(t, repo.RestPassword)
}

func TestScrubProcessEnvironment(t *testing.T) {
	t.Setenv(KeyIgnoreCert, "true")
	t.Setenv(KeyRepository, "/srv/restic")

	NewScrubber(zap.NewNop()).Scrub()

	_, found := os.LookupEnv(KeyIgnoreCert)
	assert.False(t, found)
	_, found = os.LookupEnv(KeyRepository)
	assert.False(t, found)
}
