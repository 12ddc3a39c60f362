package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisionCache(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetVisionCache("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.SetVisionCache("k1", []byte(`{"brand":"Omega"}`)))
	got, err = store.GetVisionCache("k1")
	require.NoError(t, err)
	assert.Equal(t, `{"brand":"Omega"}`, string(got))

	require.NoError(t, store.SetVisionCache("k1", []byte(`{"brand":"Rolex"}`)))
	got, err = store.GetVisionCache("k1")
	require.NoError(t, err)
	assert.Equal(t, `{"brand":"Rolex"}`, string(got))
}
