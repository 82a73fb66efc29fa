// Package check 提供 check 子命令：检查目标环境所需的令牌是否都已设置。
package check

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command"
)

// Command check 命令
var Command = New()

const description = `只有目标环境列在 schema 的 readiness.environments（默认 Production）中时，
缺少必填令牌才会以非零状态退出；其它环境只列出缺失项并返回 0。
用 --environment Production 可以在任意机器上按生产要求检查。`

// New 创建 check 命令，cmd/check 以它作为独立程序的根命令。
func New() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "environment",
			Aliases: []string{"e"},
			Usage:   "目标环境，默认读取 ASPNETCORE_ENVIRONMENT（未设置时为 Production）",
		},
	}
	flags = append(flags, command.SourceFlags()...)
	flags = append(flags, command.LogFlags()...)

	return &cli.Command{
		Name:        "check",
		Usage:       "检查必填令牌的环境变量是否齐全（不会提示输入，也不会渲染模板）",
		Description: description,
		Action:      action,
		Flags:       flags,
	}
}
