package stringity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/lwmacct/251207-go-pkg-stringity/pkg/templexp"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// TrimFull 将每一段连续空白（包括首尾）合并为一个空格。
//
//	stringity.TrimFull("  a \t b  ") // " a b "
func TrimFull(text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("%w: text is empty", ErrReference)
	}

	return whitespaceRun.ReplaceAllString(text, Space), nil
}

// normalize 合并空白并去掉首尾空格，保证拆分后的第一个元素不为空。
func normalize(text string) string {
	return strings.Trim(whitespaceRun.ReplaceAllString(text, Space), Space)
}

type countOptions struct {
	trim bool
}

// CountOption 配置 [Count]。
type CountOption func(*countOptions)

// WithCountTrim 设置计数前是否合并多余空白，默认 false。
func WithCountTrim(trim bool) CountOption {
	return func(o *countOptions) {
		o.trim = trim
	}
}

// Count 返回文本的字符数或单词数。
//
// 字符数按 grapheme cluster 计算；单词数为按单个空格拆分后的段数。
func Count(text string, scope Scope, opts ...CountOption) (int, error) {
	if text == "" {
		return 0, fmt.Errorf("%w: text is empty", ErrReference)
	}
	if err := scope.validate(); err != nil {
		return 0, err
	}

	var o countOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.trim {
		text = normalize(text)
	}

	if scope == Words {
		return len(strings.Split(text, Space)), nil
	}

	return uniseg.GraphemeClusterCount(text), nil
}

// Classify 包含空格时返回 [Words]，否则返回 [Symbols]。
func Classify(text string) (Scope, error) {
	if text == "" {
		return 0, fmt.Errorf("%w: text is empty", ErrReference)
	}
	if strings.Contains(text, Space) {
		return Words, nil
	}

	return Symbols, nil
}

// Format 用 vars 替换文本中的 ${name} 占位符，详见 [templexp.Format]。
//
// vars 为 nil 时原样返回，不会对占位符求值。
func Format(text string, vars templexp.Vars, opts ...templexp.Option) (string, error) {
	if text == "" {
		return "", fmt.Errorf("%w: text is empty", ErrReference)
	}

	formatted, err := templexp.Format(text, vars, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReference, err)
	}

	return formatted, nil
}
