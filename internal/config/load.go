package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-stringity/pkg/templexp"
)

// AppName 用于默认配置路径。
const AppName = "stringity"

// EnvPrefix 是默认的环境变量前缀。
const EnvPrefix = "STRINGITY_"

// options 配置加载选项。
type options struct {
	cmd                 *cli.Command
	configPaths         []string
	envPrefix           string
	dotenv              string
	noTemplateExpansion bool // 是否禁用配置文件的 ${VAR} 展开（默认启用）
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
//
// flag 名称由配置 key 生成，"." 替换为 "-"，如 slice.scope → --slice-scope。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithConfigPaths 设置配置文件搜索路径，按顺序查找，命中首个文件即停止。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 示例 (前缀为 "STRINGITY_")：
//   - STRINGITY_SLICE_SCOPE → slice.scope
//   - STRINGITY_SLICE_CASE_SENSITIVITY → slice.case-sensitivity
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithDotenv 额外读取 .env 文件作为环境变量来源，进程环境变量优先。
func WithDotenv(path string) Option {
	return func(o *options) {
		o.dotenv = path
	}
}

// WithoutTemplateExpansion 禁用配置文件中 ${VAR} 的环境变量展开。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.noTemplateExpansion = true
	}
}

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// 优先级 (从高到低)：
//  1. ./.stringity.yaml
//  2. ~/.stringity.yaml
//  3. /etc/stringity/config.yaml
//  4. config.yaml
//  5. config/config.yaml
func DefaultPaths() []string {
	paths := []string{"." + AppName + ".yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+AppName+".yaml"))
	}

	return append(paths, "/etc/"+AppName+"/config.yaml", "config.yaml", "config/config.yaml")
}

// Load 读取配置并按优先级合并：默认值 → 配置文件 → 环境变量 → CLI flags。
func Load(defaults Config, opts ...Option) (*Config, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths()
	}

	// 1️⃣ 默认值，展开为 "a.b" 形式的叶子 key
	values := make(map[string]any)
	flattenStruct(reflect.ValueOf(defaults), "", values)

	// 2️⃣ 配置文件
	if err := o.applyFile(values); err != nil {
		return nil, err
	}

	// 3️⃣ 环境变量
	if err := o.applyEnv(values); err != nil {
		return nil, err
	}

	// 4️⃣ CLI flags
	if o.cmd != nil {
		for _, key := range sortedKeys(values) {
			flag := FlagName(key)
			if o.cmd.IsSet(flag) {
				values[key] = o.cmd.Value(flag)
				slog.Debug("Loaded cli flag", "flag", flag, "path", key)
			}
		}
	}

	var cfg Config
	if err := decode(unflatten(values), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadCmd 是 [Load] 的便捷版本：绑定 cmd，启用 [EnvPrefix]，并读取 --config / --env-file。
func LoadCmd(cmd *cli.Command, defaults Config) (*Config, error) {
	opts := []Option{WithCommand(cmd), WithEnvPrefix(EnvPrefix)}
	if path := cmd.String("config"); path != "" {
		opts = append(opts, WithConfigPaths(path))
	}
	if path := cmd.String("env-file"); path != "" {
		opts = append(opts, WithDotenv(path))
	}

	return Load(defaults, opts...)
}

func (o *options) applyFile(values map[string]any) error {
	for _, path := range o.configPaths {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue // 文件不存在或无法读取，尝试下一个路径
		}

		if !o.noTemplateExpansion {
			expanded, expandErr := templexp.ExpandEnv(string(content))
			if expandErr != nil {
				return fmt.Errorf("expand template in %s: %w", path, expandErr)
			}
			content = []byte(expanded)
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		flattenMap(fileMap, "", values)

		slog.Debug("Loaded config from file", "path", path, "templateExpansion", !o.noTemplateExpansion)

		return nil
	}

	slog.Debug("No config file found, using defaults")

	return nil
}

func (o *options) applyEnv(values map[string]any) error {
	if o.envPrefix == "" {
		return nil
	}

	dotenv := map[string]string{}
	if o.dotenv != "" {
		var err error
		dotenv, err = godotenv.Read(o.dotenv)
		if err != nil {
			return fmt.Errorf("read env file %s: %w", o.dotenv, err)
		}
	}

	for _, key := range sortedKeys(values) {
		envKey := EnvName(o.envPrefix, key)
		val, ok := os.LookupEnv(envKey)
		if !ok {
			val, ok = dotenv[envKey]
		}
		if ok && val != "" {
			values[key] = val
			slog.Debug("Loaded env binding", "env", envKey, "path", key)
		}
	}

	return nil
}

// FlagName 返回配置 key 对应的 CLI flag 名称。
func FlagName(key string) string {
	return strings.ReplaceAll(key, ".", "-")
}

// EnvName 返回配置 key 对应的环境变量名："." 与 "-" 转为 "_" 并大写。
func EnvName(prefix, key string) string {
	return prefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// Keys 返回配置的全部叶子 key，按字母排序。
func Keys(cfg Config) []string {
	values := make(map[string]any)
	flattenStruct(reflect.ValueOf(cfg), "", values)

	return sortedKeys(values)
}

// MarshalYAML 按 json tag 输出配置的 YAML 形式，时长以字符串表示。
func MarshalYAML(cfg Config) ([]byte, error) {
	values := make(map[string]any)
	flattenStruct(reflect.ValueOf(cfg), "", values)
	for key, val := range values {
		if d, ok := val.(time.Duration); ok {
			values[key] = d.String()
		}
	}

	return yamlv3.Marshal(unflatten(values))
}

// ═══════════════════════════════════════════════════════════════════════════
// map 辅助函数
// ═══════════════════════════════════════════════════════════════════════════

var durationType = reflect.TypeFor[time.Duration]()

func flattenStruct(val reflect.Value, prefix string, out map[string]any) {
	typ := val.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		key, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if !field.IsExported() || key == "" || key == "-" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}

		fv := val.Field(i)
		if fv.Kind() == reflect.Struct && field.Type != durationType {
			flattenStruct(fv, key, out)

			continue
		}
		out[key] = fv.Interface()
	}
}

func flattenMap(src map[string]any, prefix string, out map[string]any) {
	for key, value := range src {
		if prefix != "" {
			key = prefix + "." + key
		}
		if child, ok := value.(map[string]any); ok {
			flattenMap(child, key, out)

			continue
		}
		out[key] = value
	}
}

func unflatten(values map[string]any) map[string]any {
	out := make(map[string]any)
	for key, value := range values {
		parts := strings.Split(key, ".")
		current := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := current[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				current[part] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = value
	}

	return out
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	var raw map[string]any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return map[string]any{}, nil
	}

	return raw, nil
}

func decode(data map[string]any, out *Config) error {
	conf := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	}
	decoder, err := mapstructure.NewDecoder(conf)
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
