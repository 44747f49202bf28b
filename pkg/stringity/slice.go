package stringity

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
)

// Slice 按字符或单词截取文本的一段。
//
// start / end 可以是绝对位置 ([Index])、百分比 ([Percent]) 或要查找的字面量 ([Token])。
// 区间为左闭右开；终点为字面量且锚点为 [Last] 时包含该字面量本身。
//
// 返回值：
//   - (result, true, nil) - 截取成功
//   - ("", false, nil) - 参数合法但没有结果（边界未找到、越界、负数位置、结果为空）
//   - ("", false, err) - 参数不合法，err 可用 [errors.Is] 匹配 [ErrReference] / [ErrType] / [ErrRange]
//
// 示例：
//
//	s, ok, err := stringity.Slice("The quick brown fox", stringity.Words,
//	    stringity.Index(0), stringity.Index(2),
//	) // "The quick", true, nil
func Slice(text string, scope Scope, start, end Locator, opts ...SliceOption) (string, bool, error) {
	if text == "" {
		return "", false, fmt.Errorf("%w: text is empty", ErrReference)
	}
	if err := scope.validate(); err != nil {
		return "", false, err
	}
	if err := start.validate("start"); err != nil {
		return "", false, err
	}
	if err := end.validate("end"); err != nil {
		return "", false, err
	}

	o, err := newSliceOptions(opts)
	if err != nil {
		return "", false, err
	}

	if o.trim {
		text = normalize(text)
	}
	seq := newSequence(split(text, scope), o.caseSensitive)

	from := seq.locate(start, o.start)
	to := seq.locate(end, o.end)

	// 为追加的 sep 预留长度
	if scope == Symbols && o.sep != "" && end.numeric() {
		to -= uniseg.GraphemeClusterCount(o.sep)
	}

	// 字面量与数值混用时不做区间校验
	if start.numeric() && end.numeric() && from > to {
		return "", false, fmt.Errorf("%w: start %d is greater than end %d", ErrRange, from, to)
	}

	if !seq.has(from, o.start) {
		return "", false, nil
	}
	if to > seq.len() && !o.strict {
		to = seq.len()
	}
	if !seq.has(from, o.start) || !seq.has(to, o.end) {
		return "", false, nil
	}
	if from < 0 || to < 0 {
		return "", false, nil
	}

	if !o.tags {
		from++
		to--
	}
	if from >= to || to > seq.len() {
		return "", false, nil
	}

	sliced := strings.TrimSpace(strings.Join(seq.elems[from:to], scope.Separator()))
	if sliced == "" {
		return "", false, nil
	}

	return sliced + o.sep, true, nil
}

// MustSlice 调用 [Slice]，参数不合法时 panic，无结果时返回空字符串。
func MustSlice(text string, scope Scope, start, end Locator, opts ...SliceOption) string {
	sliced, _, err := Slice(text, scope, start, end, opts...)
	if err != nil {
		panic(fmt.Sprintf("stringity: slice: %v", err))
	}

	return sliced
}

// sequence 是拆分后的元素序列，folded 仅在忽略大小写时存在。
type sequence struct {
	elems  []string
	folded []string
}

func newSequence(elems []string, caseSensitive bool) sequence {
	seq := sequence{elems: elems}
	if !caseSensitive {
		seq.folded = make([]string, len(elems))
		caser := cases.Fold()
		for i, el := range elems {
			seq.folded[i] = caser.String(el)
		}
	}

	return seq
}

func (q sequence) len() int {
	return len(q.elems)
}

// locate 将定位符换算为元素下标。未找到的字面量在 First 锚点下返回 -1，在 Last 锚点下返回 0。
func (q sequence) locate(l Locator, anchor Anchor) int {
	switch l.kind {
	case kindIndex:
		return l.index
	case kindPercent:
		if l.nan {
			return -1
		}
		// 半数向上取整，-0.5 得到 0
		return int(math.Floor(float64(q.len())*float64(l.percent)/100 + 0.5))
	}

	haystack, needle := q.elems, l.token
	if q.folded != nil {
		haystack, needle = q.folded, cases.Fold().String(needle)
	}
	if anchor == Last {
		return lastIndex(haystack, needle) + 1
	}

	return slices.Index(haystack, needle)
}

// has 检查锚点对应的边界元素是否存在：Last 检查 i-1，First 检查 i。
func (q sequence) has(i int, anchor Anchor) bool {
	if anchor == Last {
		i--
	}

	return i >= 0 && i < q.len() && q.elems[i] != ""
}

func lastIndex(elems []string, target string) int {
	for i := len(elems) - 1; i >= 0; i-- {
		if elems[i] == target {
			return i
		}
	}

	return -1
}

// split 按 Scope 拆分文本；字符模式以 grapheme cluster 为单位。
func split(text string, scope Scope) []string {
	if scope == Words {
		return strings.Split(text, Space)
	}

	elems := make([]string, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		elems = append(elems, g.Str())
	}

	return elems
}
