package questionsource

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/lastactive/internal/domain/questions"
)

func TestSQLiteEndpointOrdersByLastActivity(t *testing.T) {
	ctx := context.Background()
	endpoint, err := OpenSQLite(filepath.Join(t.TempDir(), "questions.db"), 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = endpoint.Close() })

	records := sampleRecords()
	require.NoError(t, endpoint.Upsert(ctx, records[0], 100))
	require.NoError(t, endpoint.Upsert(ctx, records[1], 300))
	require.NoError(t, endpoint.Upsert(ctx, records[2], 200))

	got, err := endpoint.FetchLastActive(ctx)
	require.NoError(t, err)
	require.Equal(t, []questions.RawQuestionRecord{records[1], records[2]}, got)
}

func TestSQLiteEndpointUpsertUpdatesActivity(t *testing.T) {
	ctx := context.Background()
	endpoint, err := OpenSQLite(filepath.Join(t.TempDir(), "questions.db"), 10)
	require.NoError(t, err)
	t.Cleanup(func() { _ = endpoint.Close() })

	records := sampleRecords()
	require.NoError(t, endpoint.Upsert(ctx, records[0], 100))
	require.NoError(t, endpoint.Upsert(ctx, records[1], 200))
	renamed := records[0]
	renamed.Title = "renamed"
	require.NoError(t, endpoint.Upsert(ctx, renamed, 300))

	got, err := endpoint.FetchLastActive(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, renamed, got[0])
}

func TestSQLiteEndpointEmptyTable(t *testing.T) {
	endpoint, err := OpenSQLite(filepath.Join(t.TempDir(), "questions.db"), 10)
	require.NoError(t, err)
	t.Cleanup(func() { _ = endpoint.Close() })

	got, err := endpoint.FetchLastActive(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}
