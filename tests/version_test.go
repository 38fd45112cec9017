package tests

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/vouch-news/vouch-contract/common"
)

func TestVersion(t *testing.T) {
	data, err := os.ReadFile("../VERSION")
	require.NoError(t, err)

	v := strings.TrimPrefix(string(data), "v")
	parts := strings.Split(strings.TrimSpace(v), ".")
	require.Len(t, parts, 3)

	var ver [3]int
	for i := range parts {
		ver[i], err = strconv.Atoi(parts[i])
		require.NoError(t, err)
	}

	expected := ver[0]*1_000_000 + ver[1]*1_000 + ver[2]
	require.Equal(t, common.Version, expected,
		"version from common package is different from the one in VERSION file")
	require.Less(t, common.PrevVersion, common.Version)

	e := newExecutor(t)
	acc := e.NewAccount(t)
	h := DeployVouchContract(t, e, NewVouchDeployParams(acc.ScriptHash(), acc.ScriptHash()))
	e.CommitteeInvoker(h).Invoke(t, stackitem.Make(expected), "version")
}
