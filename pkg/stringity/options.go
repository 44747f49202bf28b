package stringity

import (
	"fmt"
	"strings"
)

// Anchor 决定字面量定位符取首次还是末次出现的位置。
//
// 零值表示使用默认值（起点 First，终点 Last）。
type Anchor int

const (
	// First 使用首次出现的位置。
	First Anchor = iota + 1
	// Last 使用末次出现的位置（包含该元素）。
	Last
)

// String 返回 Anchor 的文本形式。
func (a Anchor) String() string {
	switch a {
	case First:
		return "first"
	case Last:
		return "last"
	default:
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
}

// ParseAnchor 解析 "first" / "last"，空字符串返回零值（默认）。
func ParseAnchor(name string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return 0, nil
	case "first":
		return First, nil
	case "last":
		return Last, nil
	default:
		return 0, fmt.Errorf("%w: anchor must be first or last, got %q", ErrType, name)
	}
}

// sliceOptions 是 [Slice] 归一化后的配置，构建后不再修改。
type sliceOptions struct {
	trim          bool
	tags          bool
	caseSensitive bool
	strict        bool
	start         Anchor
	end           Anchor
	sep           string
}

// SliceOption 配置 [Slice]。
type SliceOption func(*sliceOptions)

func newSliceOptions(opts []SliceOption) (sliceOptions, error) {
	o := sliceOptions{
		trim:          true,
		tags:          true,
		caseSensitive: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.start == 0 {
		o.start = First
	}
	if o.end == 0 {
		o.end = Last
	}
	if o.start != First && o.start != Last {
		return o, fmt.Errorf("%w: start anchor must be first or last, got %s", ErrType, o.start)
	}
	if o.end != First && o.end != Last {
		return o, fmt.Errorf("%w: end anchor must be first or last, got %s", ErrType, o.end)
	}

	return o, nil
}

// WithTrim 设置切片前是否合并多余空白，默认 true。
func WithTrim(trim bool) SliceOption {
	return func(o *sliceOptions) {
		o.trim = trim
	}
}

// WithoutTrim 保留原始空白。
func WithoutTrim() SliceOption {
	return WithTrim(false)
}

// WithTags 设置结果是否包含起止边界元素本身，默认 true。
func WithTags(tags bool) SliceOption {
	return func(o *sliceOptions) {
		o.tags = tags
	}
}

// WithoutTags 从结果中去掉起止边界元素。
//
// 示例：
//
//	stringity.Slice("The quick brown fox", stringity.Words,
//	    stringity.Token("quick"), stringity.Token("fox"),
//	    stringity.WithoutTags(),
//	) // "brown"
func WithoutTags() SliceOption {
	return WithTags(false)
}

// WithCaseSensitivity 设置字面量查找是否区分大小写，默认 true。
func WithCaseSensitivity(sensitive bool) SliceOption {
	return func(o *sliceOptions) {
		o.caseSensitive = sensitive
	}
}

// WithCaseInsensitive 字面量查找忽略大小写。
func WithCaseInsensitive() SliceOption {
	return WithCaseSensitivity(false)
}

// WithStrict 设置严格模式，默认 false。
//
// 非严格模式下超出序列长度的终点会被截断到序列长度；严格模式下不截断，结果为无值。
func WithStrict(strict bool) SliceOption {
	return func(o *sliceOptions) {
		o.strict = strict
	}
}

// WithStartAnchor 设置起点字面量取首次还是末次出现，默认 [First]。
func WithStartAnchor(a Anchor) SliceOption {
	return func(o *sliceOptions) {
		o.start = a
	}
}

// WithEndAnchor 设置终点字面量取首次还是末次出现，默认 [Last]。
func WithEndAnchor(a Anchor) SliceOption {
	return func(o *sliceOptions) {
		o.end = a
	}
}

// WithSep 设置追加到结果末尾的分隔符。
//
// 字符模式下位置或百分比终点换算后会先减去 sep 的长度，使追加后的总长度保持不变。
func WithSep(sep string) SliceOption {
	return func(o *sliceOptions) {
		o.sep = sep
	}
}
