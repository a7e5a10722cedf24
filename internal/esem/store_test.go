package esem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadKeyMaterialRoundTrips(t *testing.T) {
	dir := t.TempDir()

	sk, err := ScalarFromWideBytes(testSkAES)
	require.NoError(t, err)
	km, err := KeyGen(V2, testSkAES, &sk)
	require.NoError(t, err)

	require.NoError(t, SaveKeyMaterial(dir, km))

	pub, err := LoadMasterPublic(dir)
	require.NoError(t, err)
	require.True(t, pub.Equal(km.MasterPublic))

	signerMat, err := LoadSignerMaterial(dir, V2)
	require.NoError(t, err)
	require.True(t, signerMat.MasterSecret.Equal(km.MasterSecret))
	require.Len(t, signerMat.Subkeys, 3)
	require.Len(t, signerMat.SecretTables, 3)
	for j := range km.Rounds {
		require.Equal(t, km.Rounds[j].Subkey, signerMat.Subkeys[j])
		for i := range km.Rounds[j].Secret {
			require.True(t, km.Rounds[j].Secret[i].Equal(signerMat.SecretTables[j][i]))
		}
	}

	for j := range km.Rounds {
		subkey, public, err := LoadServerMaterial(dir, V2, j)
		require.NoError(t, err)
		require.Equal(t, km.Rounds[j].Subkey, subkey)
		for i := range km.Rounds[j].Public {
			require.True(t, km.Rounds[j].Public[i].Equal(public[i]))
		}
	}
}

func TestMarshalUnmarshalPublicTable(t *testing.T) {
	km := buildTestKeyMaterial(t, V2)
	encoded := MarshalPublicTable(km.Rounds[0].Public)
	require.Len(t, encoded, 128*PointSize)

	decoded, err := UnmarshalPublicTable(encoded, 128)
	require.NoError(t, err)
	for i := range decoded {
		require.True(t, decoded[i].Equal(km.Rounds[0].Public[i]))
	}
}

func TestUnmarshalPublicTableRejectsWrongSize(t *testing.T) {
	_, err := UnmarshalPublicTable(make([]byte, 10), 128)
	require.Error(t, err)
}

func TestMarshalUnmarshalSecretTable(t *testing.T) {
	km := buildTestKeyMaterial(t, V2)
	encoded := MarshalSecretTable(km.Rounds[0].Secret)
	require.Len(t, encoded, 128*ScalarSize)

	decoded, err := UnmarshalSecretTable(encoded, 128)
	require.NoError(t, err)
	for i := range decoded {
		require.True(t, decoded[i].Equal(km.Rounds[0].Secret[i]))
	}
}

func TestUnmarshalSecretTableRejectsWrongSize(t *testing.T) {
	_, err := UnmarshalSecretTable(make([]byte, 7), 128)
	require.Error(t, err)
}
