package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pnc-buildconfig/internal/adapters"
	"pnc-buildconfig/internal/types"
)

func TestReadArtifactConfig(t *testing.T) {
	st, err := adapters.ParseINI([]byte(`[DEFAULT]
base = git://host

[org.example.lib]
version = 1.4
package = lib
scmUrl = ${base}/lib.git#v${version}
profiles = release

[org.example.bare]
package = bare
`))
	require.NoError(t, err)

	cfg, err := ReadArtifactConfig(st, "org.example.lib")
	require.NoError(t, err)
	assert.Equal(t, "1.4", cfg.Version)
	require.NotNil(t, cfg.Package)
	assert.Equal(t, "lib", *cfg.Package)
	require.NotNil(t, cfg.ScmURL)
	assert.Equal(t, "git://host/lib.git#v1.4", *cfg.ScmURL)
	require.NotNil(t, cfg.Profiles)
	assert.Nil(t, cfg.Patches)

	_, err = ReadArtifactConfig(st, "org.example.bare")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMissingRequiredOption))

	_, err = ReadArtifactConfig(st, "org.example.none")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnknownSection))
}
