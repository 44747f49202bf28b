package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-stringity/internal/command"
	"github.com/lwmacct/251207-go-pkg-stringity/internal/command/client"
	"github.com/lwmacct/251207-go-pkg-stringity/internal/command/server"
	"github.com/lwmacct/251207-go-pkg-stringity/internal/command/text"
	"github.com/lwmacct/251207-go-pkg-stringity/internal/version"
)

func main() {
	commands := append(text.Commands(),
		version.Command,
		client.Command,
		server.Command,
	)

	app := &cli.Command{
		Name:     version.AppRawName,
		Usage:    "文本截取与处理工具",
		Version:  version.GetVersion(),
		Flags:    command.GlobalFlags(),
		Before:   command.SetupLogger,
		Commands: commands,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, command.ErrNoValue) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
