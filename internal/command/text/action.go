package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-stringity/internal/command"
	"github.com/lwmacct/251207-go-pkg-stringity/internal/config"
	"github.com/lwmacct/251207-go-pkg-stringity/pkg/stringity"
	"github.com/lwmacct/251207-go-pkg-stringity/pkg/templexp"
)

func sliceAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadCmd(cmd, config.DefaultConfig())
	if err != nil {
		return err
	}
	text, err := command.ReadText(cmd)
	if err != nil {
		return err
	}

	scope, err := cfg.Slice.ParseScope()
	if err != nil {
		return fmt.Errorf("slice: %w", err)
	}
	opts, err := cfg.Slice.Options()
	if err != nil {
		return fmt.Errorf("slice: %w", err)
	}
	start, err := stringity.ParseLocator(cmd.String("start"))
	if err != nil {
		return fmt.Errorf("slice: start: %w", err)
	}
	end, err := stringity.ParseLocator(cmd.String("end"))
	if err != nil {
		return fmt.Errorf("slice: end: %w", err)
	}

	sliced, ok, err := stringity.Slice(text, scope, start, end, opts...)
	if err != nil {
		return fmt.Errorf("slice: %w", err)
	}
	if !ok {
		return command.ErrNoValue
	}

	return command.Println(cmd, sliced)
}

func trimAction(_ context.Context, cmd *cli.Command) error {
	text, err := command.ReadText(cmd)
	if err != nil {
		return err
	}
	trimmed, err := stringity.TrimFull(text)
	if err != nil {
		return fmt.Errorf("trim: %w", err)
	}

	return command.Println(cmd, trimmed)
}

func countAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadCmd(cmd, config.DefaultConfig())
	if err != nil {
		return err
	}
	text, err := command.ReadText(cmd)
	if err != nil {
		return err
	}
	scope, err := cfg.Slice.ParseScope()
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}

	n, err := stringity.Count(text, scope, stringity.WithCountTrim(cmd.Bool("trim")))
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}

	return command.Println(cmd, n)
}

func classifyAction(_ context.Context, cmd *cli.Command) error {
	text, err := command.ReadText(cmd)
	if err != nil {
		return err
	}
	scope, err := stringity.Classify(text)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	return command.Println(cmd, scope)
}

func formatAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadCmd(cmd, config.DefaultConfig())
	if err != nil {
		return err
	}
	text, err := command.ReadText(cmd)
	if err != nil {
		return err
	}

	opts, err := cfg.Format.Options()
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if cmd.Bool("required") {
		opts = append(opts, templexp.WithRequired())
	}
	vars, err := formatVars(cmd)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}

	formatted, err := stringity.Format(text, vars, opts...)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}

	return command.Println(cmd, formatted)
}

// formatVars 按 --var、--arg、--env 的顺序选择变量来源，均未设置时返回 nil。
func formatVars(cmd *cli.Command) (templexp.Vars, error) {
	if pairs := cmd.StringSlice("var"); len(pairs) > 0 {
		vars := make(templexp.Map, len(pairs))
		for _, pair := range pairs {
			name, value, ok := strings.Cut(pair, "=")
			if !ok || name == "" {
				return nil, fmt.Errorf("%w: --var %q must be name=value", stringity.ErrType, pair)
			}
			vars[name] = value
		}

		return vars, nil
	}
	if args := cmd.StringSlice("arg"); len(args) > 0 {
		return templexp.List(args), nil
	}
	if cmd.Bool("env") {
		return templexp.Env(), nil
	}

	return nil, nil
}

func unicodeAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadCmd(cmd, config.DefaultConfig())
	if err != nil {
		return err
	}
	text, err := command.ReadText(cmd)
	if err != nil {
		return err
	}

	converted, err := stringity.ToUnicode(text, cfg.Unicode.Options()...)
	if err != nil {
		return fmt.Errorf("unicode: %w", err)
	}

	return command.Println(cmd, converted)
}

func configAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadCmd(cmd, config.DefaultConfig())
	if err != nil {
		return err
	}
	out, err := config.MarshalYAML(*cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, err = cmd.Root().Writer.Write(out)

	return err
}
