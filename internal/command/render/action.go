package render

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/render"
)

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
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

	res, err := render.Run(ctx, render.Options{
		Template: cfg.Template,
		Output:   cfg.Output,
		Existing: cfg.Existing,
		Schema:   sch,
		Source:   src,
	})
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	_, _ = fmt.Fprintf(w, "Wrote %s (%d/%d tokens bound", res.Output, len(res.Bound), len(res.Requested))
	if n := len(res.Unresolved); n > 0 {
		_, _ = fmt.Fprintf(w, ", %d left as placeholders", n)
	}
	if n := len(res.Preserved); n > 0 {
		_, _ = fmt.Fprintf(w, ", %d defaults preserved", n)
	}
	_, _ = fmt.Fprintln(w, ")")

	return nil
}
