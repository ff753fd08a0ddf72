package postgres

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/healthperm-server/internal/model"
)

func TestNewRepositories(t *testing.T) {
	t.Parallel()

	db := &Connection{}
	stores := txStores{q: db}

	assert.Equal(t, db, stores.Users().(*UserRepository).db)
	assert.Equal(t, db, stores.Devices().(*DeviceRepository).db)
	assert.Equal(t, db, stores.Entities().(*EntityRepository).db)
	assert.Equal(t, db, stores.Grants().(*GrantRepository).db)
	assert.Equal(t, db, stores.Audit().(*AuditRepository).db)
}

func TestToDB(t *testing.T) {
	t.Parallel()

	v, err := toDB(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = toDB(math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), v)

	_, err = toDB(math.MaxInt64 + 1)
	assert.Error(t, err)
}

func TestFromDB(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(7), fromDB(7))
	assert.Equal(t, uint64(0), fromDB(-1))
}

func TestScanHash(t *testing.T) {
	t.Parallel()

	raw := make([]byte, model.HashSize)
	raw[0] = 0xab

	h, err := scanHash(raw)
	require.NoError(t, err)
	assert.Equal(t, byte(0xab), h[0])

	_, err = scanHash(raw[:10])
	assert.Error(t, err)
}

func TestConnection_PingWithoutPool(t *testing.T) {
	t.Parallel()

	conn := &Connection{}
	assert.Error(t, conn.Ping(context.Background()))
	assert.NoError(t, conn.Close())
}
