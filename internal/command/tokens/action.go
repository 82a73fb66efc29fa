package tokens

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/render"
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
	src, err := command.NewEnv(cfg)
	if err != nil {
		return err
	}
	tmpl, err := render.LoadTemplate(cfg.Template)
	if err != nil {
		return err
	}

	rows, unused, err := buildReport(ctx, tmpl, sch, src)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintf(w, "%s: no placeholders\n", cfg.Template)
	} else {
		_, _ = fmt.Fprintln(w, renderTable(rows))
	}
	if len(unused) > 0 {
		_, _ = fmt.Fprintf(w, "Schema tokens not used by %s: %s\n", cfg.Template, strings.Join(unused, ", "))
	}

	return nil
}
