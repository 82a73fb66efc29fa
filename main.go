package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command/check"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command/dotenv"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command/render"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command/tokens"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "由带 __Token__ 占位符的模板生成配置文件",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			version.Command,
			render.Command,
			check.Command,
			tokens.Command,
			dotenv.Command,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
