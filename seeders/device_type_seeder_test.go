package seeders

import (
	"context"
	"testing"

	"academy-manager/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDeviceTypes_Additive(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	require.NoError(t, seedDeviceTypes(ctx, db))
	require.NoError(t, seedDeviceTypes(ctx, db))

	var total int
	require.NoError(t, db.SQL().QueryRow("SELECT COUNT(*) FROM tipos_devices").Scan(&total))
	assert.Equal(t, len(deviceTypesData), total)

	var paraEmprestimo bool
	require.NoError(t, db.SQL().QueryRow("SELECT para_emprestimo FROM tipos_devices WHERE nome = 'Apple TV'").Scan(&paraEmprestimo))
	assert.False(t, paraEmprestimo)
}
