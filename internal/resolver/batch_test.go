package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/comic-sorter/internal/models"
)

func TestResolveBatch_PreservesOrderAndReportsProgress(t *testing.T) {
	paths := []string{"/in/Batman 1.cbz", "/in/Some Indie Book 01.cbz", "/in/Spawn 300.cbr"}
	reader := new(MockReader)
	reader.On("ReadEmbedded", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	type call struct{ index, total int }
	var calls []call
	records, err := newResolver(reader, nil, false).ResolveBatch(context.Background(), paths,
		func(index, total int, rec *models.ComicMetadata) {
			calls = append(calls, call{index, total})
		})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "DC Comics/Batman", records[0].SuggestedFolder)
	assert.Equal(t, "Unsorted/Some Indie Book 01", records[1].SuggestedFolder)
	assert.Equal(t, "Image Comics/Spawn", records[2].SuggestedFolder)
	for i, rec := range records {
		assert.Equal(t, paths[i], rec.Path)
	}
	assert.Equal(t, []call{{0, 3}, {1, 3}, {2, 3}}, calls)
	reader.AssertNumberOfCalls(t, "ReadEmbedded", 3)
}

func TestResolveBatch_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	paths := []string{"a.cbz", "b.cbz", "c.cbz"}

	records, err := newResolver(nil, nil, false).ResolveBatch(ctx, paths,
		func(index, total int, rec *models.ComicMetadata) {
			if index == 0 {
				cancel()
			}
		})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, records, 1)
	assert.Equal(t, "a.cbz", records[0].OriginalFilename)
}

func TestResolveBatch_Empty(t *testing.T) {
	records, err := newResolver(nil, nil, false).ResolveBatch(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}
