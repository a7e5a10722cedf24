package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/readytrader/esem/internal/esem"
)

func buildTestKeyMaterial(t *testing.T) *esem.KeyMaterial {
	t.Helper()
	km, err := esem.KeyGen(esem.V2, nil, nil)
	require.NoError(t, err)
	return km
}

func buildHandlers(t *testing.T, km *esem.KeyMaterial) []RoundHandler {
	t.Helper()
	handlers := make([]RoundHandler, len(km.Rounds))
	for j, round := range km.Rounds {
		srv, err := esem.NewServer(km.Variant, round.Subkey, round.Public)
		require.NoError(t, err)
		handlers[j] = srv.Handle
	}
	return handlers
}

func TestMultiplexedRoundTrip(t *testing.T) {
	km := buildTestKeyMaterial(t)
	handlers := buildHandlers(t, km)

	ln, err := Listen("127.0.0.1:0", handlers, time.Second)
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		_ = ln.Serve(func(error) {})
	}()

	client, err := DialMultiplexed(ln.Addr().String(), len(handlers), time.Second)
	require.NoError(t, err)
	defer client.Close()

	signer := newTestSigner(t, km)
	sig, err := signer.Sign(make([]byte, 32))
	require.NoError(t, err)
	x := sig[:esem.RandomiserSize]

	verifier, err := esem.NewVerifier(km.Variant, km.MasterPublic)
	require.NoError(t, err)
	err = verifier.Verify(sig, make([]byte, 32), client)
	require.NoError(t, err)

	for round := 0; round < len(handlers); round++ {
		reply, err := client.Exchange(round, x)
		require.NoError(t, err)
		require.Len(t, reply, ReplySize)
	}
}

func TestClientExchangeRejectsOutOfRangeRound(t *testing.T) {
	km := buildTestKeyMaterial(t)
	handlers := buildHandlers(t, km)

	ln, err := Listen("127.0.0.1:0", handlers, time.Second)
	require.NoError(t, err)
	defer ln.Close()
	go func() { _ = ln.Serve(func(error) {}) }()

	client, err := DialMultiplexed(ln.Addr().String(), len(handlers), time.Second)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Exchange(99, make([]byte, RequestSize))
	require.Error(t, err)
}

func TestDistinctListenersRoundTrip(t *testing.T) {
	km := buildTestKeyMaterial(t)
	handlers := buildHandlers(t, km)

	var addrs []string
	var listeners []*MultiplexedListener
	for _, h := range handlers {
		ln, err := Listen("127.0.0.1:0", []RoundHandler{h}, time.Second)
		require.NoError(t, err)
		listeners = append(listeners, ln)
		addrs = append(addrs, ln.Addr().String())
		go func(l *MultiplexedListener) { _ = l.Serve(func(error) {}) }(ln)
	}
	defer func() {
		for _, l := range listeners {
			l.Close()
		}
	}()

	client, err := DialDistinct(addrs, time.Second)
	require.NoError(t, err)
	defer client.Close()

	signer := newTestSigner(t, km)
	sig, err := signer.Sign(make([]byte, 32))
	require.NoError(t, err)

	verifier, err := esem.NewVerifier(km.Variant, km.MasterPublic)
	require.NoError(t, err)
	err = verifier.Verify(sig, make([]byte, 32), client)
	require.NoError(t, err)
}

func newTestSigner(t *testing.T, km *esem.KeyMaterial) *esem.Signer {
	t.Helper()
	subkeys := make([][]byte, len(km.Rounds))
	secretTables := make([][]esem.Scalar, len(km.Rounds))
	for j, round := range km.Rounds {
		subkeys[j] = round.Subkey
		secretTables[j] = round.Secret
	}
	signer, err := esem.NewSigner(km.Variant, km.MasterSecret, subkeys, secretTables)
	require.NoError(t, err)
	return signer
}
