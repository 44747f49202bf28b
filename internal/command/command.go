// Package command 提供文本、客户端和服务端的命令行功能。
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-stringity/internal/config"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// ErrNoValue 表示调用合法但没有结果，main 以退出码 2 结束且不输出错误。
var ErrNoValue = errors.New("no value")

// GlobalFlags 返回根命令上的通用 flags，子命令通过 cmd.String 读取。
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径（默认搜索 .stringity.yaml 等）",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: ".env 文件路径",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "输出调试日志",
		},
	}
}

// SetupLogger 按 --debug 设置默认 slog 日志级别，用作根命令的 Before 钩子。
func SetupLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := slog.LevelInfo
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: level})))

	return ctx, nil
}

// ReadText 返回第一个位置参数；没有参数时读取标准输入并去掉末尾换行。
func ReadText(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() > 0 {
		return cmd.Args().First(), nil
	}

	data, err := io.ReadAll(cmd.Root().Reader)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}

// Println 向根命令的 Writer 输出一行。
func Println(cmd *cli.Command, a ...any) error {
	_, err := fmt.Fprintln(cmd.Root().Writer, a...)

	return err
}
