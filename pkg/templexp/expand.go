package templexp

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrParameter 在 ${VAR:?msg} / ${VAR?msg} 校验失败时返回。
var ErrParameter = errors.New("templexp: parameter null or not set")

// ═══════════════════════════════════════════════════════════════════════════
// Shell 参数展开
// ═══════════════════════════════════════════════════════════════════════════

// ExpandEnv 用当前进程环境变量的快照执行 [Expand]。
//
// 用于配置文件内容的预处理，":=" 的赋值只写入这份快照，不修改进程环境。
func ExpandEnv(text string) (string, error) {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			env[name] = value
		}
	}

	return Expand(text, env)
}

// Expand 对 text 执行 Shell 风格的参数展开，变量取自 env。
//
// 支持的语法：
//   - ${VAR} - 未设置时展开为空字符串
//   - ${VAR:-word} / ${VAR-word} - 默认值
//   - ${VAR:+word} / ${VAR+word} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验，失败返回 [ErrParameter]
//   - ${VAR:=word} / ${VAR=word} - 赋值，写入 env
//   - $$ - 字面量 $
//
// 带冒号的形式把空值视为未设置。word 中可以嵌套 ${...}；无法识别的表达式保持原样。
// 与 [Format] 不同，Expand 只识别合法的变量名，不接受自定义语法。
func Expand(text string, env map[string]string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '$' || i+1 >= len(text) {
			buf.WriteByte(text[i])
			i++
			continue
		}

		switch text[i+1] {
		case '$':
			buf.WriteByte('$')
			i += 2
			continue
		case '{':
		default:
			buf.WriteByte('$')
			i++
			continue
		}

		end := closingBrace(text, i+2)
		if end < 0 {
			buf.WriteByte('$')
			i++
			continue
		}

		expanded, ok, err := expandParameter(text[i+2:end], env)
		if err != nil {
			return "", err
		}
		if ok {
			buf.WriteString(expanded)
		} else {
			buf.WriteString(text[i : end+1])
		}
		i = end + 1
	}

	return buf.String(), nil
}

// parameter 是一个解析后的 ${name<op>word} 表达式。
type parameter struct {
	name  string
	colon bool
	op    byte // 0 表示无运算符
	word  string
}

func parseParameter(expr string) (parameter, bool) {
	if expr == "" || !isNameStart(expr[0]) {
		return parameter{}, false
	}

	i := 1
	for i < len(expr) && isNameChar(expr[i]) {
		i++
	}
	p := parameter{name: expr[:i]}
	rest := expr[i:]
	if rest == "" {
		return p, true
	}

	if rest[0] == ':' && len(rest) >= 2 {
		p.colon = true
		rest = rest[1:]
	}
	switch rest[0] {
	case '-', '+', '?', '=':
		p.op, p.word = rest[0], rest[1:]
		return p, true
	}

	return parameter{}, false
}

func expandParameter(expr string, env map[string]string) (string, bool, error) {
	p, ok := parseParameter(expr)
	if !ok {
		return "", false, nil
	}

	val, isSet := env[p.name]
	present := isSet && (!p.colon || val != "")

	switch p.op {
	case '-':
		if present {
			return val, true, nil
		}
		return expandWord(p.word, env)
	case '+':
		if !present {
			return "", true, nil
		}
		return expandWord(p.word, env)
	case '?':
		if present {
			return val, true, nil
		}
		if p.word == "" {
			return "", false, fmt.Errorf("%w: %s", ErrParameter, p.name)
		}
		return "", false, fmt.Errorf("%w: %s: %s", ErrParameter, p.name, p.word)
	case '=':
		if present {
			return val, true, nil
		}
		word, ok, err := expandWord(p.word, env)
		if err != nil {
			return "", false, err
		}
		env[p.name] = word
		return word, ok, nil
	}

	return val, true, nil
}

func expandWord(word string, env map[string]string) (string, bool, error) {
	if !strings.Contains(word, "${") {
		return word, true, nil
	}
	expanded, err := Expand(word, env)
	if err != nil {
		return "", false, err
	}

	return expanded, true, nil
}

// closingBrace 返回与 start 之前的 "${" 配对的 "}" 下标，允许嵌套；找不到时返回 -1。
func closingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}' && depth == 0:
			return i
		case text[i] == '}':
			depth--
		}
	}

	return -1
}

func isNameStart(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}
