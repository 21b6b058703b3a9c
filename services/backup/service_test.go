package backup

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"facilityops/services/dataset"
	"facilityops/services/testutil"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	db := testutil.NewTestDB(t, &Record{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewServiceWith(db, node, t.TempDir())
}

func TestCreateWritesArtifactAndRecord(t *testing.T) {
	svc := newTestService(t)
	snap := dataset.Seed()

	rec, err := svc.Create(context.Background(), snap)
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.Len(t, rec.Checksum, 64)

	raw, err := os.ReadFile(rec.ArtifactPath)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Equal(t, rec.Checksum, env.Checksum)
	require.Equal(t, snap.Counts(), env.ItemCounts)
	require.Len(t, env.Snapshot.Workers, len(snap.Workers))

	latest, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, rec.ID, latest.ID)
}

func TestCreateNeverOverwrites(t *testing.T) {
	svc := newTestService(t)
	snap := dataset.Seed()

	first, err := svc.Create(context.Background(), snap)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), snap)
	require.NoError(t, err)

	require.NotEqual(t, first.ArtifactPath, second.ArtifactPath)

	var count int64
	require.NoError(t, svc.db.Model(&Record{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestLatestWithoutBackups(t *testing.T) {
	svc := newTestService(t)

	latest, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.Nil(t, latest)
}
