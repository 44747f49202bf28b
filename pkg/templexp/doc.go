// Package templexp 提供文本占位符替换。
//
// 默认识别 ${name} 形式的占位符，替换值来自显式传入的变量来源，
// 不对占位符内容求值，也不执行命令。
//
// # 变量来源
//
//   - [Map] - 按变量名查找
//   - [List] - 按占位符出现顺序依次替换
//   - [Env] - 按进程环境变量查找
//
// 找不到值的占位符保持原样；需要严格校验时使用 [WithRequired]。
//
// # 快速开始
//
//	out, err := templexp.Format("Hello ${name}", templexp.Map{"name": "World"})
//	// out == "Hello World"
//
// 按顺序替换：
//
//	out, err := templexp.Format("${a} and ${b}", templexp.List{"cats", "dogs"})
//	// out == "cats and dogs"
//
// 自定义占位符语法：
//
//	out, err := templexp.Format("Hi {{user}}", templexp.Map{"user": "bob"},
//	    templexp.WithPattern(regexp.MustCompile(`\{\{\w+\}\}`)),
//	    templexp.WithDelimiters("{{", "}}"),
//	)
//
// # Shell 参数展开
//
// 配置文件预处理使用 [Expand] / [ExpandEnv]，支持 ${VAR:-default} 等 Shell 语法：
//
//	out, err := templexp.ExpandEnv(`url: "http://${HOST}:${PORT:-8080}"`)
//
// 详见 [Format] 与 [Expand] 文档。
package templexp
