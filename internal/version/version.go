// Package version 提供构建信息与 version 子命令。
//
// 构建时通过 -ldflags 注入：
//
//	go build -ldflags "-X github.com/lwmacct/251019-go-pkg-cfgtpl/internal/version.Version=v1.2.0 \
//	  -X github.com/lwmacct/251019-go-pkg-cfgtpl/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名，同时用于配置文件搜索路径。
const AppRawName = "cfgtpl"

var (
	Version   = "" // 版本号
	Commit    = "" // 提交哈希
	BuildTime = "" // 构建时间
)

// GetVersion 返回版本号；未注入时使用模块版本，最终回退为 "dev"。
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "dev"
}

// Print 输出完整构建信息。
func Print(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s %s\n", AppRawName, GetVersion())
	if Commit != "" {
		_, _ = fmt.Fprintf(w, "  commit:  %s\n", Commit)
	}
	if BuildTime != "" {
		_, _ = fmt.Fprintf(w, "  built:   %s\n", BuildTime)
	}
	_, _ = fmt.Fprintf(w, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Command version 子命令。
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		w := cmd.Root().Writer
		if w == nil {
			w = os.Stdout
		}
		Print(w)

		return nil
	},
}
