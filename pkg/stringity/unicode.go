package stringity

import (
	"fmt"
	"strings"
)

const (
	ellipsis   = "…"
	rightQuote = "”"
)

type unicodeOptions struct {
	ellipses bool
	quotes   bool
}

// UnicodeOption 配置 [ToUnicode]。
type UnicodeOption func(*unicodeOptions)

// WithoutEllipses 不转换 "..."。
func WithoutEllipses() UnicodeOption {
	return func(o *unicodeOptions) {
		o.ellipses = false
	}
}

// WithoutQuotes 不转换直双引号。
func WithoutQuotes() UnicodeOption {
	return func(o *unicodeOptions) {
		o.quotes = false
	}
}

// ToUnicode 将 "..." 替换为 "…"，将直双引号替换为 "”"。
//
// 不区分开引号与闭引号，所有 " 都替换为闭引号。
func ToUnicode(text string, opts ...UnicodeOption) (string, error) {
	if text == "" {
		return "", fmt.Errorf("%w: text is empty", ErrReference)
	}

	o := unicodeOptions{ellipses: true, quotes: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.ellipses {
		text = strings.ReplaceAll(text, "...", ellipsis)
	}
	if o.quotes {
		text = strings.ReplaceAll(text, `"`, rightQuote)
	}

	return text, nil
}
