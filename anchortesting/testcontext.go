// Package anchortesting provides fixtures shared by the tests of the anchor
// package and the ledger backends.
package anchortesting

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/datatrails/go-datatrails-common/azkeys"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-merkleanchor/anchor"
	"github.com/stretchr/testify/require"
)

type TestContext struct {
	Log logger.Logger
	T   *testing.T
}

type TestConfig struct {
	TestLabelPrefix string
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := TestContext{
		T: t,
	}
	logger.New("TEST")
	c.Log = logger.Sugar.WithServiceName(cfg.TestLabelPrefix)
	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

func TestGenerateECKey(t *testing.T, curve elliptic.Curve) ecdsa.PrivateKey {
	privateKey, err := ecdsa.GenerateKey(curve, rand.Reader)
	require.NoError(t, err)
	return *privateKey
}

// NewTestSealer returns a sealer backed by a fresh P-256 key
func NewTestSealer(t *testing.T, issuer string) anchor.Sealer {
	codec, err := anchor.NewCBORCodec()
	require.NoError(t, err)

	key := TestGenerateECKey(t, elliptic.P256())
	return anchor.NewSealer(issuer, codec, azkeys.NewTestCoseSigner(t, key))
}
