package catalog_test

import (
	"testing"
	"time"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) catalog.Store

func entry(source, template string, props ...string) catalog.Entry {
	return catalog.Entry{Source: source, Template: template, Properties: props, Dialect: "permissive"}
}

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	t.Run(name+"/Save_and_Get", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		before := time.Now().UTC().Add(-time.Second)
		saved, err := store.Save(entry("api", "User {UserId} logged in", "UserId"))
		require.NoError(t, err)
		assert.NotEmpty(t, saved.ID)
		assert.Equal(t, 1, saved.Sequence)
		assert.True(t, saved.SeenAt.After(before))

		got, err := store.Get(saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, got.ID)
		assert.Equal(t, "api", got.Source)
		assert.Equal(t, "User {UserId} logged in", got.Template)
		assert.Equal(t, []string{"UserId"}, got.Properties)
		assert.Equal(t, "permissive", got.Dialect)
	})

	t.Run(name+"/Save_KeepsProvidedID", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		saved, err := store.Save(catalog.Entry{ID: "fixed-id", Source: "api", Template: "x"})
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", saved.ID)
		assert.Equal(t, []string{}, saved.Properties)
	})

	t.Run(name+"/Save_RejectsIDOfOtherTemplate", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		a, err := store.Save(entry("api", "{a}", "a"))
		require.NoError(t, err)

		clash := entry("api", "{b}", "b")
		clash.ID = a.ID
		_, err = store.Save(clash)
		assert.ErrorIs(t, err, catalog.ErrIDConflict)

		got, err := store.Get(a.ID)
		require.NoError(t, err)
		assert.Equal(t, "{a}", got.Template)

		list, err := store.List("api")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run(name+"/Save_ExistingTemplateIgnoresNewID", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		a, err := store.Save(entry("api", "{a}", "a"))
		require.NoError(t, err)

		again := entry("api", "{a}", "a")
		again.ID = "other-id"
		saved, err := store.Save(again)
		require.NoError(t, err)
		assert.Equal(t, a.ID, saved.ID)

		_, err = store.Get("other-id")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run(name+"/Get_NotFound", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		_, err := store.Get("nonexistent")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run(name+"/Save_Upsert", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		first, err := store.Save(entry("api", "{a}", "a"))
		require.NoError(t, err)
		_, err = store.Save(entry("api", "{b}", "b"))
		require.NoError(t, err)

		upd := entry("api", "{a}", "a")
		upd.Dialect = "strict"
		second, err := store.Save(upd)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 3, second.Sequence)
		assert.Equal(t, "strict", second.Dialect)

		entries, err := store.List("api")
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run(name+"/List_Empty", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		entries, err := store.List("nonexistent")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run(name+"/List_OrderedBySequence", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		for _, tmpl := range []string{"{c}", "{a}", "{b}"} {
			_, err := store.Save(entry("api", tmpl))
			require.NoError(t, err)
		}
		_, err := store.Save(entry("worker", "{z}"))
		require.NoError(t, err)

		entries, err := store.List("api")
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "{c}", entries[0].Template)
		assert.Equal(t, "{a}", entries[1].Template)
		assert.Equal(t, "{b}", entries[2].Template)
		for i, e := range entries {
			assert.Equal(t, i+1, e.Sequence)
		}

		// Sequences are per source
		worker, err := store.List("worker")
		require.NoError(t, err)
		require.Len(t, worker, 1)
		assert.Equal(t, 1, worker[0].Sequence)
	})

	t.Run(name+"/SameTemplate_DifferentSources", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		a, err := store.Save(entry("api", "{x}"))
		require.NoError(t, err)
		b, err := store.Save(entry("worker", "{x}"))
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		saved, err := store.Save(entry("api", "{a}"))
		require.NoError(t, err)

		require.NoError(t, store.Delete(saved.ID))
		_, err = store.Get(saved.ID)
		assert.ErrorIs(t, err, catalog.ErrNotFound)

		// Deleting again is not an error
		assert.NoError(t, store.Delete(saved.ID))

		// Re-saving gets a fresh entry
		again, err := store.Save(entry("api", "{a}"))
		require.NoError(t, err)
		assert.NotEqual(t, saved.ID, again.ID)
	})

	t.Run(name+"/DeleteSource", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		_, err := store.Save(entry("api", "{a}"))
		require.NoError(t, err)
		_, err = store.Save(entry("api", "{b}"))
		require.NoError(t, err)
		kept, err := store.Save(entry("worker", "{a}"))
		require.NoError(t, err)

		require.NoError(t, store.DeleteSource("api"))

		entries, err := store.List("api")
		require.NoError(t, err)
		assert.Empty(t, entries)

		_, err = store.Get(kept.ID)
		assert.NoError(t, err)
	})

	t.Run(name+"/ReturnedEntryIsCopy", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		props := []string{"a"}
		saved, err := store.Save(entry("api", "{a}", props...))
		require.NoError(t, err)
		saved.Properties[0] = "mutated"

		got, err := store.Get(saved.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, got.Properties)
	})

	t.Run(name+"/Closed", func(t *testing.T) {
		store := factory(t)
		require.NoError(t, store.Close())

		_, err := store.Save(entry("api", "{a}"))
		assert.ErrorIs(t, err, catalog.ErrStoreClosed)

		_, err = store.Get("id")
		assert.ErrorIs(t, err, catalog.ErrStoreClosed)

		_, err = store.List("api")
		assert.ErrorIs(t, err, catalog.ErrStoreClosed)

		assert.ErrorIs(t, store.Delete("id"), catalog.ErrStoreClosed)
		assert.ErrorIs(t, store.DeleteSource("api"), catalog.ErrStoreClosed)
	})
}

// TestMemoryStore runs contract tests against MemoryStore.
func TestMemoryStore(t *testing.T) {
	factory := func(t *testing.T) catalog.Store {
		return catalog.NewMemoryStore()
	}
	storeContractTest(t, "MemoryStore", factory)
}

// TestSQLiteStore runs contract tests against SQLiteStore.
func TestSQLiteStore(t *testing.T) {
	factory := func(t *testing.T) catalog.Store {
		store, err := catalog.NewSQLiteStore(":memory:")
		require.NoError(t, err)
		return store
	}
	storeContractTest(t, "SQLiteStore", factory)
}
