package store

import (
	"testing"

	"github.com/rahmasleam/NexusMenaV2/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededStoreHasAllCollections(t *testing.T) {
	s := NewSeeded()
	counts := s.Count()
	for _, c := range models.Collections {
		assert.Greaterf(t, counts[c], 0, "collection %s is empty", c)
	}
}

func TestListSortsNewestFirst(t *testing.T) {
	s := New()
	_, err := s.Add(models.CollectionNews, models.ContentItem{Title: "old", Date: "2024-01-01"})
	require.NoError(t, err)
	_, err = s.Add(models.CollectionNews, models.ContentItem{Title: "new", Date: "2025-06-01"})
	require.NoError(t, err)

	list, err := s.List(models.CollectionNews)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Title)
}

func TestCRUDRoundTrip(t *testing.T) {
	s := New()

	added, err := s.Add(models.CollectionEvents, models.ContentItem{Title: "Meetup", Region: models.RegionEgypt})
	require.NoError(t, err)
	require.NotEmpty(t, added.ID, "id assigned on add")

	got, err := s.Get(models.CollectionEvents, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meetup", got.Title)

	got.Title = "Bigger Meetup"
	require.NoError(t, s.Update(models.CollectionEvents, got))
	got2, err := s.Get(models.CollectionEvents, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bigger Meetup", got2.Title)

	require.NoError(t, s.Delete(models.CollectionEvents, added.ID))
	_, err = s.Get(models.CollectionEvents, added.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnknownCollectionRejected(t *testing.T) {
	s := New()
	_, err := s.List("bogus")
	assert.ErrorIs(t, err, ErrUnknownCollection)
	_, err = s.Add("bogus", models.ContentItem{})
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestListReturnsCopy(t *testing.T) {
	s := NewSeeded()
	list, err := s.List(models.CollectionNews)
	require.NoError(t, err)

	list[0].Title = "mutated"
	fresh, err := s.List(models.CollectionNews)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", fresh[0].Title)
}
