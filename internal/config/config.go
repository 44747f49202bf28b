// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - 通过 WithConfigPaths 选项设置，默认见 DefaultPaths
//  3. 环境变量 - 通过 WithEnvPrefix / WithDotenv 选项启用
//  4. CLI flags - 通过 WithCommand 选项设置
package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/lwmacct/251207-go-pkg-stringity/pkg/stringity"
	"github.com/lwmacct/251207-go-pkg-stringity/pkg/templexp"
)

// Config 应用配置。
type Config struct {
	Slice   SliceConfig   `json:"slice" desc:"截取默认选项"`
	Format  FormatConfig  `json:"format" desc:"占位符替换选项"`
	Unicode UnicodeConfig `json:"unicode" desc:"标点转换选项"`
	Server  ServerConfig  `json:"server" desc:"服务端配置"`
	Client  ClientConfig  `json:"client" desc:"客户端配置"`
}

// SliceConfig 截取默认选项。
type SliceConfig struct {
	Scope           string `json:"scope" desc:"截取单位 symbols|words"`
	Trim            bool   `json:"trim" desc:"合并多余空白"`
	Tags            bool   `json:"tags" desc:"包含边界元素"`
	CaseSensitivity bool   `json:"case-sensitivity" desc:"查找区分大小写"`
	Strict          bool   `json:"strict" desc:"终点越界时不截断"`
	StartAnchor     string `json:"start-anchor" desc:"起点字面量取 first|last"`
	EndAnchor       string `json:"end-anchor" desc:"终点字面量取 first|last"`
	Sep             string `json:"sep" desc:"追加到结果末尾的分隔符"`
}

// FormatConfig 占位符替换选项。
type FormatConfig struct {
	Pattern string `json:"pattern" desc:"占位符正则"`
	Start   string `json:"start" desc:"起始定界符"`
	End     string `json:"end" desc:"结束定界符"`
}

// UnicodeConfig 标点转换选项。
type UnicodeConfig struct {
	Ellipses bool `json:"ellipses" desc:"转换 ..."`
	Quotes   bool `json:"quotes" desc:"转换直双引号"`
}

// ServerConfig 服务端配置。
type ServerConfig struct {
	Addr     string        `json:"addr" desc:"服务器监听地址"`
	Timeout  time.Duration `json:"timeout" desc:"HTTP 读写超时"`
	Idletime time.Duration `json:"idletime" desc:"HTTP 空闲超时"`
	MaxBody  int64         `json:"max-body" desc:"请求体最大字节数"`
}

// ClientConfig 客户端配置。
type ClientConfig struct {
	URL     string        `json:"url" desc:"服务器地址"`
	Timeout time.Duration `json:"timeout" desc:"请求超时时间"`
	Retries int           `json:"retries" desc:"重试次数"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Slice: SliceConfig{
			Scope:           stringity.Words.String(),
			Trim:            true,
			Tags:            true,
			CaseSensitivity: true,
			StartAnchor:     stringity.First.String(),
			EndAnchor:       stringity.Last.String(),
		},
		Format: FormatConfig{
			Pattern: templexp.DefaultPattern.String(),
			Start:   templexp.DefaultStart,
			End:     templexp.DefaultEnd,
		},
		Unicode: UnicodeConfig{
			Ellipses: true,
			Quotes:   true,
		},
		Server: ServerConfig{
			Addr:     ":40118",
			Timeout:  15 * time.Second,
			Idletime: 60 * time.Second,
			MaxBody:  1 << 20,
		},
		Client: ClientConfig{
			URL:     "http://localhost:40118",
			Timeout: 30 * time.Second,
			Retries: 3,
		},
	}
}

// ParseScope 返回配置的截取单位。
func (c SliceConfig) ParseScope() (stringity.Scope, error) {
	return stringity.ParseScope(c.Scope)
}

// Options 将配置转换为 [stringity.SliceOption]。
func (c SliceConfig) Options() ([]stringity.SliceOption, error) {
	start, err := stringity.ParseAnchor(c.StartAnchor)
	if err != nil {
		return nil, fmt.Errorf("slice.start-anchor: %w", err)
	}
	end, err := stringity.ParseAnchor(c.EndAnchor)
	if err != nil {
		return nil, fmt.Errorf("slice.end-anchor: %w", err)
	}

	return []stringity.SliceOption{
		stringity.WithTrim(c.Trim),
		stringity.WithTags(c.Tags),
		stringity.WithCaseSensitivity(c.CaseSensitivity),
		stringity.WithStrict(c.Strict),
		stringity.WithStartAnchor(start),
		stringity.WithEndAnchor(end),
		stringity.WithSep(c.Sep),
	}, nil
}

// Options 将配置转换为 [templexp.Option]，空 Pattern 使用默认规则。
func (c FormatConfig) Options() ([]templexp.Option, error) {
	opts := []templexp.Option{templexp.WithDelimiters(c.Start, c.End)}
	if c.Pattern != "" {
		re, err := regexp.Compile(c.Pattern)
		if err != nil {
			return nil, fmt.Errorf("format.pattern: %w", err)
		}
		opts = append(opts, templexp.WithPattern(re))
	}

	return opts, nil
}

// Options 将配置转换为 [stringity.UnicodeOption]。
func (c UnicodeConfig) Options() []stringity.UnicodeOption {
	var opts []stringity.UnicodeOption
	if !c.Ellipses {
		opts = append(opts, stringity.WithoutEllipses())
	}
	if !c.Quotes {
		opts = append(opts, stringity.WithoutQuotes())
	}

	return opts
}
