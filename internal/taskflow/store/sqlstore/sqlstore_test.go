package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	pg := &Dialect{Numbered: true}
	require.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", pg.rebind("SELECT a FROM t WHERE x = ? AND y = ?"))

	lite := &Dialect{}
	require.Equal(t, "SELECT ? ?", lite.rebind("SELECT ? ?"))
	require.Equal(t, "SELECT 1", pg.rebind("SELECT 1"))
}
