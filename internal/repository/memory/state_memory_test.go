package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/repository/memory"
)

func TestMemoryStateRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("IssueAndConsume", func(t *testing.T) {
		repo := memory.NewMemoryStateRepository(5*time.Minute, time.Minute)
		defer repo.Close()

		token, err := repo.Issue(ctx, models.ProviderGitHub)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		ok, err := repo.Consume(ctx, token, models.ProviderGitHub)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ConsumeIsSingleUse", func(t *testing.T) {
		repo := memory.NewMemoryStateRepository(5*time.Minute, time.Minute)
		defer repo.Close()

		token, err := repo.Issue(ctx, models.ProviderGoogle)
		require.NoError(t, err)

		ok, err := repo.Consume(ctx, token, models.ProviderGoogle)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.Consume(ctx, token, models.ProviderGoogle)
		require.NoError(t, err)
		assert.False(t, ok, "second consume of the same token must fail")
	})

	t.Run("WrongProviderKeepsEntry", func(t *testing.T) {
		repo := memory.NewMemoryStateRepository(5*time.Minute, time.Minute)
		defer repo.Close()

		token, err := repo.Issue(ctx, models.ProviderGitHub)
		require.NoError(t, err)

		ok, err := repo.Consume(ctx, token, models.ProviderMicrosoft)
		require.NoError(t, err)
		require.False(t, ok)

		// The mismatch must not have invalidated the in-flight state.
		ok, err = repo.Consume(ctx, token, models.ProviderGitHub)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		repo := memory.NewMemoryStateRepository(5*time.Minute, time.Minute)
		defer repo.Close()

		ok, err := repo.Consume(ctx, "never-issued", models.ProviderGitHub)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		repo := memory.NewMemoryStateRepository(10*time.Millisecond, time.Minute)
		defer repo.Close()

		token, err := repo.Issue(ctx, models.ProviderGitHub)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		ok, err := repo.Consume(ctx, token, models.ProviderGitHub)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
