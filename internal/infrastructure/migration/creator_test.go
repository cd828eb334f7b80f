package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	dir := t.TempDir()

	pair, err := Create(dir, "Add Promo Codes")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(pair.UpPath, "_add_promo_codes.up.sql"))
	assert.True(t, strings.HasSuffix(pair.DownPath, "_add_promo_codes.down.sql"))
	assert.Len(t, pair.Version, 14)

	up, err := os.ReadFile(pair.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Promo Codes")

	_, err = os.Stat(pair.DownPath)
	require.NoError(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()

	names, err := List(dir)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = Create(dir, "create orders")
	require.NoError(t, err)

	names, err = List(dir)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Contains(t, names[0], "create_orders")
}

func TestListMissingDir(t *testing.T) {
	names, err := List("/nonexistent/migrations")
	require.NoError(t, err)
	assert.Nil(t, names)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "add_stock_checks", slugify("Add Stock  Checks"))
	assert.Equal(t, "v2_schema", slugify("v2-schema"))
	assert.Equal(t, "trailing", slugify("trailing--"))
}
