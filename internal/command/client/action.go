package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-stringity/internal/command"
	"github.com/lwmacct/251207-go-pkg-stringity/internal/config"
)

func newClient(cmd *cli.Command) (*Client, error) {
	cfg, err := config.LoadCmd(cmd, config.DefaultConfig())
	if err != nil {
		return nil, err
	}

	return New(cfg.Client), nil
}

func healthAction(ctx context.Context, cmd *cli.Command) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}

	if _, err := c.Get(ctx, "/health"); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	return command.Println(cmd, "OK")
}

func getAction(ctx context.Context, cmd *cli.Command) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}

	path := "/"
	if cmd.Args().Len() > 0 {
		path = cmd.Args().First()
	}

	data, err := c.Get(ctx, path)
	if err != nil {
		return err
	}

	return command.Println(cmd, strings.TrimSpace(string(data)))
}

// callAction 输出接口返回的 JSON；slice 接口 found 为 false 时返回 [command.ErrNoValue]。
func callAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("missing operation, expected one of %s", strings.Join(Ops, "|"))
	}
	op := cmd.Args().Get(0)

	body := cmd.Args().Get(1)
	if body == "" {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(cmd.Root().Reader); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		body = buf.String()
	}

	c, err := newClient(cmd)
	if err != nil {
		return err
	}

	data, err := c.Call(ctx, op, []byte(body))
	if err != nil {
		return err
	}

	var result struct {
		Found *bool `json:"found"`
	}
	if err := json.Unmarshal(data, &result); err == nil && result.Found != nil && !*result.Found {
		return command.ErrNoValue
	}

	return command.Println(cmd, strings.TrimSpace(string(data)))
}
