package dotenv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/render"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/source"
)

func action(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.Load(cmd)
	if err != nil {
		return err
	}
	sch, err := command.LoadSchema(cfg)
	if err != nil {
		return err
	}
	src, err := command.NewSource(cfg)
	if err != nil {
		return err
	}

	repl, err := source.Collect(ctx, src, sch.Tokens)
	if err != nil {
		return fmt.Errorf("collect values: %w", err)
	}

	err = render.WriteAtomic(cfg.DotEnv, func(w io.Writer) error {
		return source.WriteDotEnv(w, sch.Tokens, repl)
	})
	if err != nil {
		return err
	}
	slog.Info("Wrote dotenv file", "path", cfg.DotEnv, "tokens", len(repl))

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	_, _ = fmt.Fprintf(w, "Wrote %s (%d/%d tokens)\n", cfg.DotEnv, len(repl), len(sch.Tokens))

	return nil
}
