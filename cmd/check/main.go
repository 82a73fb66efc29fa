// check 是 cfgtpl check 的独立程序，适合作为容器启动前的就绪检查：
//
//	ASPNETCORE_ENVIRONMENT=Production check --schema schema.yaml
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command/check"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/version"
)

func main() {
	cmd := check.New()
	cmd.Version = version.GetVersion()

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("Readiness check failed", "error", err)
		os.Exit(1)
	}
}
