package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/baron-chain/cwscripts/app"
	"github.com/baron-chain/cwscripts/app/params"
	"github.com/baron-chain/cwscripts/rpc"
)

func TestMain(m *testing.M) {
	params.SetAddressPrefixes(params.DefaultBech32Prefix)
	os.Exit(m.Run())
}

// writeConfig writes the test App configuration as a cwscripts.yaml.
func writeConfig(t *testing.T, extra map[string]any) string {
	t.Helper()
	cfg := app.NewTestConfig(t)

	file := map[string]any{
		"chain_id":  cfg.ChainID,
		"node":      cfg.Node,
		"gas":       cfg.Gas,
		"wallets":   cfg.Wallets,
		"contracts": cfg.Contracts,
	}
	for k, v := range extra {
		file[k] = v
	}
	bz, err := yaml.Marshal(file)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cwscripts.yaml")
	require.NoError(t, os.WriteFile(path, bz, 0o600))
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := runCmdWithStderr(t, args...)
	return stdout, err
}

func runCmdWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	rootCmd, c := newRootCmd()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append(args, "--log_level", "none"))
	err := execute(context.Background(), rootCmd, c)
	assert.Nil(t, c.app, "app left open")
	return stdout.String(), stderr.String(), err
}

func TestKeysNew(t *testing.T) {
	out, err := runCmd(t, "keys", "new", "alice")
	require.NoError(t, err)

	var key keyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &key))
	assert.Equal(t, "alice", key.Name)
	assert.True(t, strings.HasPrefix(key.Address, "terra1"))
	assert.Len(t, strings.Fields(key.Mnemonic), 24)
}

func TestKeysList(t *testing.T) {
	cfgPath := writeConfig(t, nil)

	out, err := runCmd(t, "keys", "list", "--config", cfgPath)
	require.NoError(t, err)
	var keys []keyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &keys))
	require.Len(t, keys, len(app.TestWallets))
	assert.Equal(t, "homework", keys[0].Name)

	out, err = runCmd(t, "keys", "list", "--config", cfgPath, "--output", "yaml")
	require.NoError(t, err)
	var yamlKeys []keyOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &yamlKeys))
	assert.Equal(t, keys, yamlKeys)
}

func TestScriptsAgainstUnreachableNode(t *testing.T) {
	cfgPath := writeConfig(t, nil)

	specs := map[string]struct {
		args   []string
		expErr error
	}{
		"get price":   {args: []string{"get-price"}, expErr: rpc.ErrNetwork},
		"read price":  {args: []string{"read-price"}, expErr: rpc.ErrNetwork},
		"balance":     {args: []string{"balance", "homework"}, expErr: rpc.ErrNetwork},
		"query":       {args: []string{"query", "oracle", `{"query_price":{}}`}, expErr: rpc.ErrNetwork},
		"mint":        {args: []string{"mint"}, expErr: rpc.ErrBroadcast},
		"increment":   {args: []string{"increment", "--from", "wallet1"}, expErr: rpc.ErrBroadcast},
		"buy":         {args: []string{"buy", "--funds", "500000uluna"}, expErr: rpc.ErrBroadcast},
		"set price":   {args: []string{"set-price", "28"}, expErr: rpc.ErrBroadcast},
		"raw execute": {args: []string{"execute", "counter", "reset", `{"count":1}`}, expErr: rpc.ErrBroadcast},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			_, err := runCmd(t, append(spec.args, "--config", cfgPath, "--timeout", "10s")...)
			require.ErrorIs(t, err, spec.expErr)
		})
	}
}

func TestCommandInputErrors(t *testing.T) {
	cfgPath := writeConfig(t, nil)

	_, err := runCmd(t, "buy", "--funds", "0uluna", "--config", cfgPath)
	require.Error(t, err)

	_, err = runCmd(t, "mint", "--amount", "ten", "--config", cfgPath)
	require.Error(t, err)

	_, err = runCmd(t, "query", "lottery", "{}", "--config", cfgPath)
	require.Error(t, err)
}

func TestMissingExplicitConfig(t *testing.T) {
	_, err := runCmd(t, "get-count", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, exitCodeConfig, getExitCode(err))
}

func TestHistory(t *testing.T) {
	cfgPath := writeConfig(t, map[string]any{"journal_dir": t.TempDir()})

	out, err := runCmd(t, "history", "--config", cfgPath)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)

	_, err = runCmd(t, "history", "--config", writeConfig(t, nil))
	require.Error(t, err)
	assert.Equal(t, exitCodeConfig, getExitCode(err))
}

func TestErrorOutput(t *testing.T) {
	cfgPath := writeConfig(t, nil)

	// ordinary failures are printed by the command itself
	stdout, stderr, err := runCmdWithStderr(t, "get-price", "--config", cfgPath, "--timeout", "10s")
	require.ErrorIs(t, err, rpc.ErrNetwork)
	assert.Empty(t, stdout)
	assert.True(t, strings.HasPrefix(stderr, "Error: "), stderr)

	// failures with their own exit code are left to handleError
	_, stderr, err = runCmdWithStderr(t, "get-count", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, exitCodeConfig, getExitCode(err))
	assert.Empty(t, stderr)
}

func TestGetExitCode(t *testing.T) {
	specs := map[string]struct {
		err     error
		expCode int
	}{
		"plain error":   {err: errors.New("boom"), expCode: 1},
		"ledger error":  {err: rpc.ErrBroadcast.Wrap("dial"), expCode: 1},
		"config error":  {err: exitError{errors.New("bad config"), exitCodeConfig}, expCode: exitCodeConfig},
		"explicit code": {err: exitError{errors.New("custom"), 7}, expCode: 7},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, spec.expCode, getExitCode(spec.err))
		})
	}
}
