// Package dotenv 提供 dotenv 子命令：收集全部 schema 令牌并写出 .env 文件。
package dotenv

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command"
)

// Command dotenv 命令
var Command = newCommand()

func newCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "dotenv",
			Value: command.Defaults.DotEnv,
			Usage: "输出的 dotenv 文件路径",
		},
		command.PromptModeFlag(),
	}
	flags = append(flags, command.SourceFlags()...)
	flags = append(flags, command.LogFlags()...)

	return &cli.Command{
		Name:   "dotenv",
		Usage:  "按 schema 收集令牌值并写出 Section__Key=value 形式的 .env 文件",
		Action: action,
		Flags:  flags,
	}
}
