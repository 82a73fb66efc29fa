// Package render 提供 render 子命令：由模板生成配置文件。
package render

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command"
)

// Command render 命令
var Command = newCommand()

func newCommand() *cli.Command {
	flags := []cli.Flag{
		command.TemplateFlag(),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   command.Defaults.Output,
			Usage:   "输出文件路径，扩展名决定格式",
		},
		&cli.StringFlag{
			Name:  "existing",
			Value: command.Defaults.Existing,
			Usage: "旧输出路径，其中白名单 key 的值会被保留；为空时使用 --output",
		},
		command.PromptModeFlag(),
	}
	flags = append(flags, command.SourceFlags()...)
	flags = append(flags, command.LogFlags()...)

	return &cli.Command{
		Name:   "render",
		Usage:  "解析模板中的 __Token__ 占位符并写出配置文件",
		Action: action,
		Flags:  flags,
	}
}
