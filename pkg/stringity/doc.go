// Package stringity 提供按字符或单词截取、空白归一化、计数、占位符替换与标点转换等文本工具。
//
// 所有函数都是无副作用的纯函数，可被多个 goroutine 并发调用。
//
// # 截取
//
// [Slice] 是核心函数，起止位置由 [Locator] 描述：
//   - [Index] - 绝对位置，如 Index(2)
//   - [Percent] - 序列长度的百分比，命令行写作 "![50%]"
//   - [Token] - 要查找的单词或字符，配合 [WithStartAnchor] / [WithEndAnchor] 选择首次或末次出现
//
// 示例：
//
//	s, ok, err := stringity.Slice("The quick brown fox", stringity.Words,
//	    stringity.Token("quick"), stringity.Token("fox"),
//	    stringity.WithoutTags(),
//	)
//	// s == "brown", ok == true
//
// # 错误与无值
//
// 调用参数不合法时返回错误，可用 [errors.Is] 区分：
//   - [ErrReference] - 必填参数缺失
//   - [ErrType] - 参数取值非法
//   - [ErrRange] - 数值起点大于终点
//
// 参数合法但没有结果时（边界不存在、越界、负数位置、结果为空），返回 ok == false 且 err == nil。
//
// # 其他工具
//
//   - [TrimFull] - 合并连续空白
//   - [Count] - 字符数或单词数
//   - [Classify] - 判断文本是单词序列还是单个词
//   - [Format] - ${name} 占位符替换，见 templexp 包
//   - [ToUnicode] - "..." 与直双引号转换为 Unicode 字符
package stringity
