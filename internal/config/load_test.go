package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-stringity/internal/config"
	"github.com/lwmacct/251207-go-pkg-stringity/pkg/stringity"
	"github.com/lwmacct/251207-go-pkg-stringity/pkg/templexp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.DefaultConfig(),
		config.WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml")),
	)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), *cfg)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv("CONFIG_TEST_SEP", "~")

	path := writeFile(t, "config.yaml", `
slice:
  scope: symbols
  strict: true
  sep: "${CONFIG_TEST_SEP}"
server:
  timeout: 5s
  max-body: 2048
`)

	cfg, err := config.Load(config.DefaultConfig(), config.WithConfigPaths(path))
	require.NoError(t, err)
	assert.Equal(t, "symbols", cfg.Slice.Scope)
	assert.True(t, cfg.Slice.Strict)
	assert.Equal(t, "~", cfg.Slice.Sep)
	assert.True(t, cfg.Slice.Trim, "keys missing from the file keep defaults")
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, int64(2048), cfg.Server.MaxBody)
	assert.Equal(t, ":40118", cfg.Server.Addr)
}

func TestLoad_ShellExpansion(t *testing.T) {
	t.Setenv("CONFIG_TEST_HOST", "example.test")
	t.Setenv("CONFIG_TEST_PORT", "8080")

	path := writeFile(t, "config.yaml", `
client:
  url: "http://${CONFIG_TEST_HOST}:${CONFIG_TEST_PORT}"
server:
  addr: "${CONFIG_TEST_UNSET:-:7777}"
`)

	cfg, err := config.Load(config.DefaultConfig(), config.WithConfigPaths(path))
	require.NoError(t, err)
	assert.Equal(t, "http://example.test:8080", cfg.Client.URL)
	assert.Equal(t, ":7777", cfg.Server.Addr)
}

func TestLoad_ShellExpansionRequired(t *testing.T) {
	path := writeFile(t, "config.yaml", "client:\n  url: \"${CONFIG_TEST_UNSET:?client url}\"\n")

	_, err := config.Load(config.DefaultConfig(), config.WithConfigPaths(path))
	require.ErrorIs(t, err, templexp.ErrParameter)
	assert.Contains(t, err.Error(), "client url")
}

func TestLoad_WithoutTemplateExpansion(t *testing.T) {
	t.Setenv("CONFIG_TEST_SEP", "~")
	path := writeFile(t, "config.yaml", "slice:\n  sep: \"${CONFIG_TEST_SEP}\"\n")

	cfg, err := config.Load(config.DefaultConfig(),
		config.WithConfigPaths(path),
		config.WithoutTemplateExpansion(),
	)
	require.NoError(t, err)
	assert.Equal(t, "${CONFIG_TEST_SEP}", cfg.Slice.Sep)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"client": {"url": "http://example.test", "retries": 7}}`)

	cfg, err := config.Load(config.DefaultConfig(), config.WithConfigPaths(path))
	require.NoError(t, err)
	assert.Equal(t, "http://example.test", cfg.Client.URL)
	assert.Equal(t, 7, cfg.Client.Retries)
}

func TestLoad_FirstExistingFileWins(t *testing.T) {
	first := writeFile(t, "first.yaml", "slice:\n  scope: symbols\n")
	second := writeFile(t, "second.yaml", "slice:\n  scope: words\n  strict: true\n")

	cfg, err := config.Load(config.DefaultConfig(),
		config.WithConfigPaths(filepath.Join(t.TempDir(), "none.yaml"), first, second),
	)
	require.NoError(t, err)
	assert.Equal(t, "symbols", cfg.Slice.Scope)
	assert.False(t, cfg.Slice.Strict)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"slice": `)

	_, err := config.Load(config.DefaultConfig(), config.WithConfigPaths(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CFGTEST_SLICE_STRICT", "true")
	t.Setenv("CFGTEST_SLICE_CASE_SENSITIVITY", "false")
	t.Setenv("CFGTEST_SERVER_TIMEOUT", "2s")

	cfg, err := config.Load(config.DefaultConfig(),
		config.WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml")),
		config.WithEnvPrefix("CFGTEST_"),
	)
	require.NoError(t, err)
	assert.True(t, cfg.Slice.Strict)
	assert.False(t, cfg.Slice.CaseSensitivity)
	assert.Equal(t, 2*time.Second, cfg.Server.Timeout)
}

func TestLoad_Dotenv(t *testing.T) {
	t.Setenv("DOTTEST_SLICE_SCOPE", "symbols")
	envFile := writeFile(t, ".env", "DOTTEST_SLICE_SCOPE=words\nDOTTEST_CLIENT_RETRIES=9\n")

	cfg, err := config.Load(config.DefaultConfig(),
		config.WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml")),
		config.WithEnvPrefix("DOTTEST_"),
		config.WithDotenv(envFile),
	)
	require.NoError(t, err)
	assert.Equal(t, "symbols", cfg.Slice.Scope, "process env wins over the env file")
	assert.Equal(t, 9, cfg.Client.Retries)

	_, err = config.Load(config.DefaultConfig(),
		config.WithEnvPrefix("DOTTEST_"),
		config.WithDotenv(filepath.Join(t.TempDir(), "missing.env")),
	)
	require.Error(t, err)
}

func TestLoad_CLIFlags(t *testing.T) {
	t.Setenv("FLAGTEST_SLICE_SCOPE", "words")

	var cfg *config.Config
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "slice-scope"},
			&cli.BoolFlag{Name: "slice-tags", Value: true},
			&cli.DurationFlag{Name: "client-timeout"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			var err error
			cfg, err = config.Load(config.DefaultConfig(),
				config.WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml")),
				config.WithEnvPrefix("FLAGTEST_"),
				config.WithCommand(cmd),
			)

			return err
		},
	}

	err := cmd.Run(context.Background(), []string{"test", "--slice-scope", "symbols", "--client-timeout", "3s"})
	require.NoError(t, err)
	assert.Equal(t, "symbols", cfg.Slice.Scope, "flags win over env")
	assert.True(t, cfg.Slice.Tags, "unset flags keep lower layers")
	assert.Equal(t, 3*time.Second, cfg.Client.Timeout)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "slice-case-sensitivity", config.FlagName("slice.case-sensitivity"))
	assert.Equal(t, "APP_SLICE_CASE_SENSITIVITY", config.EnvName("APP_", "slice.case-sensitivity"))

	keys := config.Keys(config.DefaultConfig())
	assert.Contains(t, keys, "slice.scope")
	assert.Contains(t, keys, "server.max-body")
	assert.IsNonDecreasing(t, keys)
}

func TestMarshalYAML(t *testing.T) {
	out, err := config.MarshalYAML(config.DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(out), "timeout: 15s")
	assert.Contains(t, string(out), "scope: words")

	path := writeFile(t, "roundtrip.yaml", string(out))
	cfg, err := config.Load(config.DefaultConfig(), config.WithConfigPaths(path), config.WithoutTemplateExpansion())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), *cfg)
}

func TestSliceConfig_Options(t *testing.T) {
	c := config.DefaultConfig().Slice
	c.Tags = false

	scope, err := c.ParseScope()
	require.NoError(t, err)
	opts, err := c.Options()
	require.NoError(t, err)

	got, ok, err := stringity.Slice("The quick brown fox", scope,
		stringity.Token("quick"), stringity.Token("fox"), opts...)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "brown", got)

	c.EndAnchor = "middle"
	_, err = c.Options()
	require.ErrorIs(t, err, stringity.ErrType)
}

func TestFormatConfig_Options(t *testing.T) {
	c := config.DefaultConfig().Format
	opts, err := c.Options()
	require.NoError(t, err)

	got, err := stringity.Format("Hello ${name}", nil, opts...)
	require.NoError(t, err)
	assert.Equal(t, "Hello ${name}", got)

	c.Pattern = "("
	_, err = c.Options()
	require.Error(t, err)
}

func TestUnicodeConfig_Options(t *testing.T) {
	c := config.UnicodeConfig{Ellipses: true}
	got, err := stringity.ToUnicode(`"a"...`, c.Options()...)
	require.NoError(t, err)
	assert.Equal(t, `"a"…`, got)
}
