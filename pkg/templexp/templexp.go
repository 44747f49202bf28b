package templexp

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 变量来源
// ═══════════════════════════════════════════════════════════════════════════

// Vars 提供占位符的替换值。
//
// pos 为占位符在文本中的出现序号（从 0 开始），name 为去掉定界符后的变量名。
// 返回 false 表示不替换，占位符保持原样。
type Vars interface {
	Resolve(pos int, name string) (string, bool)
}

// Map 按变量名查找，值通过 fmt.Sprint 转为字符串；缺失或 nil 值不替换。
type Map map[string]any

// Resolve 实现 [Vars]。
func (m Map) Resolve(_ int, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	val, ok := m[name]
	if !ok || val == nil {
		return "", false
	}

	return fmt.Sprint(val), true
}

// List 按出现顺序依次替换；超出长度或空字符串不替换。
type List []string

// Resolve 实现 [Vars]。
func (l List) Resolve(pos int, _ string) (string, bool) {
	if pos < 0 || pos >= len(l) || l[pos] == "" {
		return "", false
	}

	return l[pos], true
}

type envVars struct{}

// Env 返回从进程环境变量查找的来源，未设置的变量不替换。
func Env() Vars {
	return envVars{}
}

// Resolve 实现 [Vars]。
func (envVars) Resolve(_ int, name string) (string, bool) {
	if name == "" {
		return "", false
	}

	return os.LookupEnv(name)
}

// ═══════════════════════════════════════════════════════════════════════════
// 选项
// ═══════════════════════════════════════════════════════════════════════════

// DefaultPattern 匹配 ${name} 形式的占位符。
var DefaultPattern = regexp.MustCompile(`\$\{.\S*\}`)

// 默认定界符。
const (
	DefaultStart = "${"
	DefaultEnd   = "}"
)

// ErrUnresolved 在启用 [WithRequired] 且占位符无法替换时返回。
var ErrUnresolved = errors.New("templexp: unresolved placeholder")

type options struct {
	pattern  *regexp.Regexp
	start    string
	end      string
	required bool
}

// Option 配置 [Format]。
type Option func(*options)

// WithPattern 设置占位符匹配规则，nil 表示使用 [DefaultPattern]。
func WithPattern(re *regexp.Regexp) Option {
	return func(o *options) {
		if re != nil {
			o.pattern = re
		}
	}
}

// WithDelimiters 设置从占位符中剥离变量名时使用的起止定界符。
//
// 空字符串保留默认值。
func WithDelimiters(start, end string) Option {
	return func(o *options) {
		if start != "" {
			o.start = start
		}
		if end != "" {
			o.end = end
		}
	}
}

// WithRequired 要求每个占位符都能被替换，否则返回 [ErrUnresolved]。
func WithRequired() Option {
	return func(o *options) {
		o.required = true
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 替换
// ═══════════════════════════════════════════════════════════════════════════

// Format 查找 text 中所有占位符并用 vars 替换。
//
//   - [Map] - 按变量名替换
//   - [List] - 按出现顺序替换
//   - [Env] - 按环境变量替换
//   - nil - 不替换，原样返回
//
// 无法替换的占位符保持原样；仅在 [WithRequired] 时返回错误。
//
// 示例：
//
//	templexp.Format("Hello ${name}", templexp.Map{"name": "World"}) // "Hello World"
func Format(text string, vars Vars, opts ...Option) (string, error) {
	o := &options{
		pattern: DefaultPattern,
		start:   DefaultStart,
		end:     DefaultEnd,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	matches := o.pattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}
	if vars == nil && !o.required {
		return text, nil
	}

	var buf strings.Builder
	buf.Grow(len(text))

	last := 0
	for pos, m := range matches {
		token := text[m[0]:m[1]]
		buf.WriteString(text[last:m[0]])
		last = m[1]

		name := VarName(token, o.start, o.end)
		if vars != nil {
			if val, ok := vars.Resolve(pos, name); ok {
				buf.WriteString(val)
				continue
			}
		}
		if o.required {
			return "", fmt.Errorf("%w: %s", ErrUnresolved, token)
		}
		buf.WriteString(token)
	}
	buf.WriteString(text[last:])

	return buf.String(), nil
}

// VarName 去掉占位符中首次出现的起止定界符，返回变量名。
//
//	templexp.VarName("${name}", "${", "}") // "name"
func VarName(token, start, end string) string {
	name := strings.Replace(token, start, "", 1)

	return strings.Replace(name, end, "", 1)
}
