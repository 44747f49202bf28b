package stringity

import "errors"

// 调用约定被破坏时返回的错误类别，使用 [errors.Is] 判断。
//
// 找不到边界、索引越界、结果为空等情况不属于错误，由返回值中的 ok=false 表示。
var (
	// ErrReference 必填参数缺失（空字符串、零值 Scope、零值 Locator）。
	ErrReference = errors.New("stringity: missing argument")
	// ErrType 参数取值不在允许范围内（未知 Scope、Anchor、Locator 类型等）。
	ErrType = errors.New("stringity: invalid argument type")
	// ErrRange 数值区间无效，起点大于终点。
	ErrRange = errors.New("stringity: invalid range")
)
