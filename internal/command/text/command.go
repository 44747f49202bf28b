// Package text 提供 stringity 文本处理子命令。
package text

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-stringity/internal/command"
)

// Commands 返回文本处理子命令列表，每次调用都创建新的实例。
func Commands() []*cli.Command {
	return []*cli.Command{
		sliceCommand(),
		trimCommand(),
		countCommand(),
		classifyCommand(),
		formatCommand(),
		unicodeCommand(),
		configCommand(),
	}
}

func scopeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "slice-scope",
		Aliases: []string{"scope"},
		Value:   command.Defaults.Slice.Scope,
		Usage:   "截取单位 symbols|words",
	}
}

// sliceCommand 截取命令
func sliceCommand() *cli.Command {
	return &cli.Command{
		Name:      "slice",
		Usage:     "按字符或单词截取文本",
		ArgsUsage: "[text]",
		Action:    sliceAction,
		Flags: []cli.Flag{
			scopeFlag(),
			&cli.StringFlag{
				Name:     "start",
				Aliases:  []string{"s"},
				Usage:    "起点：位置、![N%] 或单词",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "end",
				Aliases:  []string{"e"},
				Usage:    "终点：位置、![N%] 或单词",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "slice-trim",
				Value: command.Defaults.Slice.Trim,
				Usage: "合并多余空白",
			},
			&cli.BoolFlag{
				Name:  "slice-tags",
				Value: command.Defaults.Slice.Tags,
				Usage: "包含边界元素",
			},
			&cli.BoolFlag{
				Name:  "slice-case-sensitivity",
				Value: command.Defaults.Slice.CaseSensitivity,
				Usage: "查找区分大小写",
			},
			&cli.BoolFlag{
				Name:  "slice-strict",
				Value: command.Defaults.Slice.Strict,
				Usage: "终点越界时不截断",
			},
			&cli.StringFlag{
				Name:  "slice-start-anchor",
				Value: command.Defaults.Slice.StartAnchor,
				Usage: "起点单词取 first|last",
			},
			&cli.StringFlag{
				Name:  "slice-end-anchor",
				Value: command.Defaults.Slice.EndAnchor,
				Usage: "终点单词取 first|last",
			},
			&cli.StringFlag{
				Name:  "slice-sep",
				Value: command.Defaults.Slice.Sep,
				Usage: "追加到结果末尾的分隔符",
			},
		},
	}
}

// trimCommand 空白合并命令
func trimCommand() *cli.Command {
	return &cli.Command{
		Name:      "trim",
		Usage:     "合并连续空白",
		ArgsUsage: "[text]",
		Action:    trimAction,
	}
}

// countCommand 计数命令
func countCommand() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "统计字符数或单词数",
		ArgsUsage: "[text]",
		Action:    countAction,
		Flags: []cli.Flag{
			scopeFlag(),
			&cli.BoolFlag{
				Name:  "trim",
				Usage: "计数前合并多余空白",
			},
		},
	}
}

// classifyCommand 分类命令
func classifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "判断文本是 words 还是 symbols",
		ArgsUsage: "[text]",
		Action:    classifyAction,
	}
}

// formatCommand 占位符替换命令
func formatCommand() *cli.Command {
	return &cli.Command{
		Name:      "format",
		Usage:     "替换 ${name} 占位符",
		ArgsUsage: "[text]",
		Action:    formatAction,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "var",
				Usage: "按名称替换，格式 name=value，可重复",
			},
			&cli.StringSliceFlag{
				Name:  "arg",
				Usage: "按出现顺序替换，可重复",
			},
			&cli.BoolFlag{
				Name:  "env",
				Usage: "从环境变量替换",
			},
			&cli.BoolFlag{
				Name:  "required",
				Usage: "存在无法替换的占位符时报错",
			},
			&cli.StringFlag{
				Name:  "format-pattern",
				Value: command.Defaults.Format.Pattern,
				Usage: "占位符正则",
			},
			&cli.StringFlag{
				Name:  "format-start",
				Value: command.Defaults.Format.Start,
				Usage: "起始定界符",
			},
			&cli.StringFlag{
				Name:  "format-end",
				Value: command.Defaults.Format.End,
				Usage: "结束定界符",
			},
		},
	}
}

// unicodeCommand 标点转换命令
func unicodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "unicode",
		Usage:     "将 ... 与直双引号转换为 Unicode 字符",
		ArgsUsage: "[text]",
		Action:    unicodeAction,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "unicode-ellipses",
				Value: command.Defaults.Unicode.Ellipses,
				Usage: "转换 ...",
			},
			&cli.BoolFlag{
				Name:  "unicode-quotes",
				Value: command.Defaults.Unicode.Quotes,
				Usage: "转换直双引号",
			},
		},
	}
}

// configCommand 输出当前生效配置
func configCommand() *cli.Command {
	return &cli.Command{
		Name:   "config",
		Usage:  "输出合并后的配置 (YAML)",
		Action: configAction,
	}
}
