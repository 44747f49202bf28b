// Package version 提供应用名称与构建版本信息。
package version

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称。
const AppRawName = "stringity"

// 构建时通过 -ldflags "-X" 注入。
var (
	Version = "dev"
	Commit  = "none"
)

// GetVersion 返回版本字符串。
func GetVersion() string {
	if Commit == "" || Commit == "none" {
		return Version
	}

	return Version + " (" + Commit + ")"
}

// Command 显示版本信息的子命令。
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s\n", AppRawName, GetVersion())

		return err
	},
}
