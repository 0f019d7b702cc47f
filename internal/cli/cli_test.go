package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/soyeahso/chatbasket/internal/config"
	"github.com/soyeahso/chatbasket/internal/topology"
)

const cliConfig = `{
  "AppHostname": "app.example.com",
  "SiteBridgeScriptName": "bridge.php",
  "MaxMessagesInBacklog": 50,
  "NumMessagesToShowOnConnect": 10,
  "ChatCommunicationToken": "s3cret",
  "prod": {
    "ChatHost": "chat.example.com",
    "MainChatServers": {"a": ["chat1.example.com:8001", "chat2.example.com:8002", "chat3.example.com:8003"]},
    "ApiChatServers": {"a": ["api1.example.com:9001", "api2.example.com:9002", "api3.example.com:9003"]},
    "RedisServer": {"a": "redis.example.com:6379"},
    "ProxyServer": "proxy.example.com:80"
  }
}`

func setupConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(body), 0o600))
	t.Setenv("WIKIA_CONFIG_ROOT", dir)
	t.Setenv("CHAT_LOG_LEVEL", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logOutput = io.Discard
	t.Cleanup(func() { logOutput = nil })

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveWithFlags(t *testing.T) {
	setupConfig(t, cliConfig)

	out, err := run(t, "resolve", "--mode", "prod", "--basket", "a", "--instance", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Instance:  3 of 3")
	assert.Contains(t, out, "chat3.example.com:8003")
	assert.Contains(t, out, "api3.example.com:9003")
	assert.Contains(t, out, "redis.example.com:6379")
	assert.Contains(t, out, "port 10845")
	assert.Contains(t, out, "Log level: error")
	assert.NotContains(t, out, "s3cret")
}

func TestResolveLegacyArgs(t *testing.T) {
	setupConfig(t, cliConfig)

	out, err := run(t, "resolve", "mode=prod", "basket=a", "instance=1", "loglevel=CRITICAL", "--format", "yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "prod", got["mode"])
	assert.Equal(t, 1, got["instance"])
	assert.Equal(t, 10843, got["policyPort"])
	assert.Equal(t, "critical", got["logLevel"])
	assert.Equal(t, map[string]any{"host": "chat1.example.com", "port": 8001}, got["chat"])
	assert.NotContains(t, out, "s3cret")
}

func TestResolveOutputIsStable(t *testing.T) {
	setupConfig(t, cliConfig)

	first, err := run(t, "resolve", "mode=prod", "basket=a", "instance=1", "--format", "yaml")
	require.NoError(t, err)
	second, err := run(t, "resolve", "mode=prod", "basket=a", "instance=1", "--format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	first, err = run(t, "resolve", "mode=prod", "basket=a", "instance=2")
	require.NoError(t, err)
	second, err = run(t, "resolve", "mode=prod", "basket=a", "instance=2")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveRunIDIsLoggedOnly(t *testing.T) {
	setupConfig(t, cliConfig)

	out, err := run(t, "resolve", "mode=prod", "basket=a", "instance=1", "loglevel=info")
	require.NoError(t, err)
	assert.NotContains(t, out, "Run ID")

	var logs bytes.Buffer
	logOutput = &logs
	t.Cleanup(func() { logOutput = nil })
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"resolve", "mode=prod", "basket=a", "instance=1", "loglevel=info"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, logs.String(), `"run_id":"`)
	assert.Contains(t, logs.String(), `"subsystem":"topology"`)
}

func TestResolveLogLevelPrecedence(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
		want string
	}{
		{"legacy arg beats env", "warn", []string{"loglevel=debug"}, "debug"},
		{"flag beats legacy arg", "warn", []string{"--log-level", "info", "loglevel=debug"}, "info"},
		{"env when no arg", "warn", nil, "warn"},
		{"default", "", nil, "error"},
	}

	levels := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupConfig(t, cliConfig)
			t.Setenv("CHAT_LOG_LEVEL", tt.env)
			t.Cleanup(func() { logLevel = "" })

			args := append([]string{"resolve", "mode=prod", "basket=a", "instance=1"}, tt.args...)
			out, err := run(t, args...)
			require.NoError(t, err)
			assert.Contains(t, out, "Log level: "+tt.want+"\n")
			assert.Equal(t, levels[tt.want], log.Zerolog().GetLevel())
		})
	}
}

func TestResolveFlagsWinOverLegacyArgs(t *testing.T) {
	setupConfig(t, cliConfig)

	out, err := run(t, "resolve", "--instance", "2", "mode=prod", "basket=a", "instance=3")
	require.NoError(t, err)
	assert.Contains(t, out, "Instance:  2 of 3")
}

func TestResolveOutOfRange(t *testing.T) {
	setupConfig(t, cliConfig)

	_, err := run(t, "resolve", "--mode", "prod", "--basket", "a", "--instance", "4")
	require.Error(t, err)

	var oor *topology.IndexOutOfRangeError
	assert.True(t, errors.As(err, &oor))
	assert.Contains(t, err.Error(), "resolving identity")
}

func TestResolveUnknownBasket(t *testing.T) {
	setupConfig(t, cliConfig)

	_, err := run(t, "resolve", "--mode", "prod", "--basket", "zz", "--instance", "1")
	var missing *topology.ConfigMissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "basket", missing.What)
}

func TestResolveBadArgs(t *testing.T) {
	setupConfig(t, cliConfig)

	_, err := run(t, "resolve", "prod")
	assert.ErrorContains(t, err, "key=value")

	_, err = run(t, "resolve", "colour=blue")
	assert.ErrorContains(t, err, "unknown argument")

	_, err = run(t, "resolve", "instance=two")
	assert.ErrorContains(t, err, "not a number")

	_, err = run(t, "resolve", "mode=prod", "basket=a", "instance=1", "loglevel=loud")
	assert.ErrorContains(t, err, "unknown log level")

	_, err = run(t, "resolve", "mode=prod", "basket=a", "instance=1", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestResolveMissingConfig(t *testing.T) {
	t.Setenv("WIKIA_CONFIG_ROOT", t.TempDir())

	_, err := run(t, "resolve", "mode=prod", "basket=a", "instance=1")
	var loadErr *config.LoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestResolveExplicitConfigFlag(t *testing.T) {
	dir := setupConfig(t, cliConfig)
	t.Setenv("WIKIA_CONFIG_ROOT", t.TempDir())

	out, err := run(t, "--config", filepath.Join(dir, config.FileName), "resolve", "mode=prod", "basket=a", "instance=1")
	require.NoError(t, err)
	assert.Contains(t, out, "chat1.example.com:8001")
}

func TestValidateCmd(t *testing.T) {
	setupConfig(t, cliConfig)
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")

	setupConfig(t, `{"MaxMessagesInBacklog": 50, "ChatCommunicationToken": "t",
  "prod": {"MainChatServers": {"a": ["c1:1", "c2:2"]}, "ApiChatServers": {"a": ["a1:1"]}, "RedisServer": {"a": "r:6379"}}}`)
	out, err = run(t, "validate")
	require.Error(t, err)
	assert.Contains(t, out, "prod.ApiChatServers.a")
}

func TestBasketsCmd(t *testing.T) {
	setupConfig(t, cliConfig)

	out, err := run(t, "baskets")
	require.NoError(t, err)
	assert.Regexp(t, `prod\s+a\s+3`, out)

	_, err = run(t, "baskets", "--mode", "staging")
	assert.Error(t, err)
}

func TestKeysCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"keys", "room", "abc123"}, "room:abc123\n"},
		{[]string{"keys", "users-in-room", "17"}, "users_in_room:17\n"},
		{[]string{"keys", "user-in-room", "amy", "17"}, "17:amy\n"},
		{[]string{"keys", "allowed", "17"}, "users_allowed_in_priv_room:17\n"},
		{[]string{"keys", "session", "abc"}, "session_data:abc\n"},
		{[]string{"keys", "chatentries", "17"}, "chatentries:17\n"},
		{[]string{"keys", "next-room-id"}, "next.room.id\n"},
		{[]string{"keys", "user-count", "3"}, "UserCounts_3\n"},
		{[]string{"keys", "runtime-stats", "3"}, "runtimeStats_3\n"},
		{[]string{"keys", "room-list", "42"}, "rooms_on_wiki:42\n"},
		{[]string{"keys", "room-list", "42", "--type", "private", "--user", "bob", "--user", "amy"},
			"rooms_on_wiki:42:f88bdd034bd952a1919797db798c7119\n"},
	}

	for _, tt := range tests {
		t.Run(tt.args[1], func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestKeysCmdRejectsInvalid(t *testing.T) {
	_, err := run(t, "keys", "room", "a:b")
	assert.ErrorContains(t, err, "keys: invalid room id")

	_, err = run(t, "keys", "user-count", "x")
	assert.ErrorContains(t, err, "not a number")

	_, err = run(t, "keys", "user-count", "0")
	assert.ErrorContains(t, err, "keys: invalid instance")
}

func TestConfigCmd(t *testing.T) {
	dir := setupConfig(t, cliConfig)

	out, err := run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, config.FileName)+"\n", out)

	out, err = run(t, "config", "get", "prod.ChatHost")
	require.NoError(t, err)
	assert.Equal(t, "chat.example.com\n", out)

	out, err = run(t, "config", "get", "prod.MainChatServers.a")
	require.NoError(t, err)
	assert.Contains(t, out, "- chat2.example.com:8002")

	_, err = run(t, "config", "get", "prod.Nope")
	assert.ErrorContains(t, err, "not found")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "chatbasket")
}
