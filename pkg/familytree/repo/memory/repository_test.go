package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/family-tree/pkg/familytree"
	"github.com/tendant/family-tree/pkg/familytree/repo/memory"
)

func TestMemoryRepository_RecordOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	key := familytree.Key{Kind: familytree.KindPerson, ID: "abc123"}

	t.Run("Get_NotFound", func(t *testing.T) {
		record, err := repo.Get(ctx, key)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, familytree.ErrInstanceNotFound)

		var notFound *familytree.InstanceNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, familytree.KindPerson, notFound.Kind)
		assert.Equal(t, "abc123", notFound.ID)
	})

	t.Run("PutAndGet", func(t *testing.T) {
		err := repo.Put(ctx, key, familytree.Dictionary{
			"id":           "abc123",
			"display_name": "Ada",
			"events":       []string{"http://example.com/event/1"},
		})
		require.NoError(t, err)

		record, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "Ada", record["display_name"])
		assert.Equal(t, []any{"http://example.com/event/1"}, record["events"])
	})

	t.Run("Put_Overwrites", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, key, familytree.Dictionary{"display_name": "Grace"}))

		record, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "Grace", record["display_name"])
		assert.NotContains(t, record, "events")
	})

	t.Run("KindsArePartitioned", func(t *testing.T) {
		_, err := repo.Get(ctx, familytree.Key{Kind: familytree.KindEvent, ID: "abc123"})
		assert.ErrorIs(t, err, familytree.ErrInstanceNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, key))

		_, err := repo.Get(ctx, key)
		assert.ErrorIs(t, err, familytree.ErrInstanceNotFound)

		err = repo.Delete(ctx, key)
		assert.ErrorIs(t, err, familytree.ErrInstanceNotFound)
		assert.Equal(t, 0, repo.Len())
	})
}

func TestMemoryRepository_RecordsAreIsolated(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	key := familytree.Key{Kind: familytree.KindEvent, ID: "e1"}

	people := []string{"http://example.com/person/1"}
	record := familytree.Dictionary{"id": "e1", "people": people}
	require.NoError(t, repo.Put(ctx, key, record))

	people[0] = "changed"
	record["id"] = "changed"

	stored, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "e1", stored["id"])
	assert.Equal(t, []any{"http://example.com/person/1"}, stored["people"])

	stored["id"] = "mutated"
	again, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "e1", again["id"])
}
