// Package tokens 提供 tokens 子命令：列出模板中的占位符及其绑定状态。
package tokens

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command"
)

// Command tokens 命令
var Command = newCommand()

func newCommand() *cli.Command {
	flags := []cli.Flag{command.TemplateFlag()}
	flags = append(flags, command.SourceFlags()...)
	flags = append(flags, command.LogFlags()...)

	return &cli.Command{
		Name:   "tokens",
		Usage:  "列出模板中的占位符、schema 声明与环境变量状态",
		Action: action,
		Flags:  flags,
	}
}
