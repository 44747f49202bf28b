package stringity

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// 百分比定位符语法：![50%]。
const (
	percentStart = "!["
	percentEnd   = "%]"
)

var (
	percentPattern = regexp.MustCompile(`^!\[\d*.*%\]$`)
	percentNumber  = regexp.MustCompile(`^[+-]?\d+`)
)

// percentNaN 是无法解析出数字的百分比定位符的文本形式。
const percentNaN = "NaN"

type locatorKind int

const (
	kindIndex locatorKind = iota + 1
	kindPercent
	kindToken
)

// Locator 描述切片的起点或终点：绝对位置、百分比或要查找的字面量。
//
// 零值表示未提供。
type Locator struct {
	kind    locatorKind
	index   int
	percent int
	nan     bool // 百分比中没有数字，换算结果视为不存在
	token   string
}

// Index 返回绝对位置定位符。
func Index(n int) Locator {
	return Locator{kind: kindIndex, index: n}
}

// Percent 返回按序列长度百分比换算的定位符。
func Percent(p int) Locator {
	return Locator{kind: kindPercent, percent: p}
}

// Token 返回按字面量查找的定位符，空字符串视为未提供。
func Token(s string) Locator {
	if s == "" {
		return Locator{}
	}

	return Locator{kind: kindToken, token: s}
}

// ParseLocator 将命令行或 JSON 中的文本转为定位符。
//
//   - 整数 → [Index]
//   - ![N%] → [Percent]
//   - 其他 → [Token]
func ParseLocator(s string) (Locator, error) {
	if s == "" {
		return Locator{}, fmt.Errorf("%w: locator is empty", ErrReference)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Index(n), nil
	}
	if percentPattern.MatchString(s) {
		return parsePercent(s)
	}

	return Token(s), nil
}

// parsePercent 读取 ![ 与 %] 之间的整数前缀：允许前导空白和正负号，忽略其后的内容。
//
// 没有数字时返回 NaN 百分比，截取时按不存在的位置处理。
func parsePercent(s string) (Locator, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(s, percentStart), percentEnd)
	number := percentNumber.FindString(strings.TrimLeftFunc(inner, unicode.IsSpace))
	if number == "" {
		return Locator{kind: kindPercent, nan: true}, nil
	}
	p, err := strconv.Atoi(number)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: percent locator %q: %w", ErrType, s, err)
	}

	return Percent(p), nil
}

// IsZero 报告定位符是否未提供。
func (l Locator) IsZero() bool {
	return l.kind == 0
}

// String 返回定位符的文本形式，可被 [ParseLocator] 还原。
func (l Locator) String() string {
	switch l.kind {
	case kindIndex:
		return strconv.Itoa(l.index)
	case kindPercent:
		if l.nan {
			return percentStart + percentNaN + percentEnd
		}
		return percentStart + strconv.Itoa(l.percent) + percentEnd
	case kindToken:
		return l.token
	default:
		return ""
	}
}

// numeric 报告定位符在字面量查找之前是否已经是数值，NaN 百分比不算。
func (l Locator) numeric() bool {
	return l.kind == kindIndex || (l.kind == kindPercent && !l.nan)
}

func (l Locator) validate(name string) error {
	switch l.kind {
	case 0:
		return fmt.Errorf("%w: %s is empty", ErrReference, name)
	case kindIndex, kindPercent, kindToken:
		return nil
	default:
		return fmt.Errorf("%w: %s must be an index, percent or token", ErrType, name)
	}
}

// MarshalJSON 将 [Index] 编码为数字，其他定位符编码为字符串。
func (l Locator) MarshalJSON() ([]byte, error) {
	switch l.kind {
	case kindIndex:
		return json.Marshal(l.index)
	case 0:
		return []byte("null"), nil
	default:
		return json.Marshal(l.String())
	}
}

// UnmarshalJSON 解析数字或字符串。
//
// 数字为 [Index]；字符串匹配 ![N%] 时为 [Percent]，否则为 [Token]（"3" 也按字面量查找）。
func (l *Locator) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = Locator{}

		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*l = Index(n)

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: locator must be a number or a string", ErrType)
	}
	if percentPattern.MatchString(s) {
		parsed, err := parsePercent(s)
		if err != nil {
			return err
		}
		*l = parsed

		return nil
	}
	*l = Token(s)

	return nil
}
