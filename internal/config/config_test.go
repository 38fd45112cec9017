package config

import (
	"math/big"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestFillDefaults(t *testing.T) {
	var c Config
	c.FillDefaults()

	require.Equal(t, "info", c.Logger.Level)
	require.Equal(t, "ws://localhost:30333/ws", c.RPC.Endpoint)
	require.Equal(t, 15*time.Second, c.RPC.DialTimeout)
	require.Equal(t, time.Minute, c.Settler.ReconcileInterval)
	require.Equal(t, 5*time.Minute, c.Settler.RetryAfter)

	c = Config{Logger: LoggerConfig{Level: "debug"}, Settler: SettlerConfig{RetryAfter: time.Second}}
	c.FillDefaults()
	require.Equal(t, "debug", c.Logger.Level)
	require.Equal(t, time.Second, c.Settler.RetryAfter)
}

func TestContractHash(t *testing.T) {
	h := util.Uint160{1, 2, 3, 4, 5}

	for _, s := range []string{h.StringLE(), "0x" + h.StringLE(), address.Uint160ToString(h)} {
		c := Config{Contract: s}
		res, err := c.ContractHash()
		require.NoError(t, err, s)
		require.Equal(t, h, res)
	}

	_, err := Config{}.ContractHash()
	require.Error(t, err)
	_, err = Config{Contract: "not a hash"}.ContractHash()
	require.Error(t, err)
}

func TestPolicy(t *testing.T) {
	blocked := util.Uint160{7, 7, 7}

	c := Config{Settler: SettlerConfig{
		MinPayout:        "0.5",
		BlockedReceivers: []string{address.Uint160ToString(blocked), " "},
	}}
	p, err := c.Policy()
	require.NoError(t, err)
	require.Equal(t, 0, p.MinPayout.Cmp(big.NewInt(50_000_000)))
	require.Equal(t, []util.Uint160{blocked}, p.BlockedReceivers)

	p, err = Config{}.Policy()
	require.NoError(t, err)
	require.Nil(t, p.MinPayout)
	require.Empty(t, p.BlockedReceivers)

	_, err = Config{Settler: SettlerConfig{MinPayout: "lots"}}.Policy()
	require.Error(t, err)
	_, err = Config{Settler: SettlerConfig{BlockedReceivers: []string{"NotAnAddress"}}}.Policy()
	require.Error(t, err)
}
