package stringity

import (
	"fmt"
	"strings"
)

// 拆分与拼接使用的字符。
const (
	Space = " "
	Void  = ""
)

// Scope 决定按字符还是按单词处理文本。
type Scope int

const (
	// Symbols 按字符（grapheme cluster）处理。
	Symbols Scope = iota + 1
	// Words 按空格分隔的单词处理。
	Words
)

// String 返回 Scope 的文本形式。
func (s Scope) String() string {
	switch s {
	case Symbols:
		return "symbols"
	case Words:
		return "words"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// Separator 返回该 Scope 拆分与拼接所用的分隔符。
func (s Scope) Separator() string {
	if s == Words {
		return Space
	}

	return Void
}

// ParseScope 解析 "symbols" / "words"（忽略大小写与首尾空白）。
func ParseScope(name string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return 0, fmt.Errorf("%w: scope is empty", ErrReference)
	case "symbols":
		return Symbols, nil
	case "words":
		return Words, nil
	default:
		return 0, fmt.Errorf("%w: scope must be symbols or words, got %q", ErrType, name)
	}
}

func (s Scope) validate() error {
	switch s {
	case 0:
		return fmt.Errorf("%w: scope is empty", ErrReference)
	case Symbols, Words:
		return nil
	default:
		return fmt.Errorf("%w: scope must be symbols or words, got %s", ErrType, s)
	}
}

// MarshalText 实现 [encoding.TextMarshaler]。
func (s Scope) MarshalText() ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	return []byte(s.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]，供 JSON 与配置解码使用。
func (s *Scope) UnmarshalText(text []byte) error {
	parsed, err := ParseScope(string(text))
	if err != nil {
		return err
	}
	*s = parsed

	return nil
}
