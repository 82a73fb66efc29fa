package check

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/readiness"
)

// target 目标环境标识。
type target struct {
	Environment string `env:"ASPNETCORE_ENVIRONMENT" envDefault:"Production"`
}

// environment 返回目标环境：--environment 优先，其次 ASPNETCORE_ENVIRONMENT。
func environment(cmd *cli.Command) (string, error) {
	if cmd.IsSet("environment") {
		return cmd.String("environment"), nil
	}

	var t target
	if err := env.Parse(&t); err != nil {
		return "", fmt.Errorf("error getting environment: %w", err)
	}

	return t.Environment, nil
}

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
	environment, err := environment(cmd)
	if err != nil {
		return err
	}

	report, checkErr := readiness.Check(ctx, sch, environment, src)

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	switch {
	case report.Ready():
		_, _ = fmt.Fprintf(w, "%s: all %d required tokens are set\n", environment, len(report.Required))
	case report.Enforced:
		_, _ = fmt.Fprintf(w, "%s: missing required tokens:\n", environment)
	default:
		_, _ = fmt.Fprintf(w, "%s: not enforced (exit 0; enforced only for %s), missing tokens:\n",
			environment, strings.Join(sch.Readiness.Environments, ", "))
	}
	for _, name := range report.Missing {
		envName := name
		if tok, ok := sch.Lookup(name); ok {
			envName = tok.EnvName()
			if tok.List {
				envName += "__0__*"
			}
		}
		_, _ = fmt.Fprintf(w, "  - %s (%s)\n", name, envName)
	}

	return checkErr
}
