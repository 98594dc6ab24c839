package utils

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetTestFlag overrides the command line flag `name` with `value` until `tb` and its subtests finish.
func SetTestFlag(tb testing.TB, name, value string) {
	tb.Helper()
	registered := flag.Lookup(name)
	require.NotNilf(tb, registered, "Flag %s is not registered", name)
	previous := registered.Value.String()
	require.NoError(tb, registered.Value.Set(value))
	tb.Cleanup(func() { require.NoError(tb, registered.Value.Set(previous)) })
}
