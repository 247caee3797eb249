package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/hashicorp-forge/docmap/pkg/database"
	"github.com/hashicorp-forge/docmap/pkg/mapping"
)

func TestCatalog_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("docmap"),
		tcpostgres.WithUsername("docmap"),
		tcpostgres.WithPassword("docmap"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = ctr.Terminate(ctx)
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	c, err := Open(Config{Driver: database.DriverPostgres, Path: dsn})
	require.NoError(t, err)
	defer c.Close()

	fwd, rev, err := mapping.BuildDocumentMapping(map[string]int{"a.pdf": 3, "with-dash": 1})
	require.NoError(t, err)
	require.NoError(t, c.Save(ctx, mapping.KindDocument, fwd, rev))

	gotFwd, gotRev, err := c.Load(ctx, mapping.KindDocument)
	require.NoError(t, err)
	assert.Equal(t, fwd, gotFwd)
	assert.Equal(t, rev, gotRev)

	e, err := c.Lookup(ctx, mapping.KindDocument, fwd["with-dash.pdf-1"])
	require.NoError(t, err)
	require.NotNil(t, e.Filename)
	assert.Equal(t, "with-dash.pdf", *e.Filename)

	ids, err := c.Collisions(ctx, mapping.KindDocument)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
