// Package command 提供各子命令共用的 flags、配置加载与替换值来源。
package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/config"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/prompt"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/schema"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/source"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/version"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/cfgm"
)

// EnvPrefix 工具自身配置的环境变量前缀。
const EnvPrefix = "CFGTPL_"

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// Stdin 交互提示的输入，测试中可替换。
var Stdin io.Reader = os.Stdin

// 共用 flags，名称与配置 key 对应（"." → "-"）。
// cli.Flag 带有解析状态，每个命令需要独立的实例。

// TemplateFlag 模板路径。
func TemplateFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "template",
		Aliases: []string{"t"},
		Value:   Defaults.Template,
		Usage:   "模板文件路径 (JSON/JSONC/YAML)",
	}
}

// PromptModeFlag 交互提示模式。
func PromptModeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "prompt-mode",
		Value: Defaults.Prompt.Mode,
		Usage: "交互提示: auto | always | never",
	}
}

// SourceFlags 读取替换值所需的 flags。
func SourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "schema",
			Value: Defaults.Schema,
			Usage: "令牌 schema 文件，为空时使用内置 schema",
		},
		&cli.StringFlag{
			Name:  "env-prefix",
			Value: Defaults.Env.Prefix,
			Usage: "只读取带此前缀的环境变量",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Value: Defaults.Env.File,
			Usage: "额外读取的 dotenv 文件",
		},
	}
}

// LogFlags 日志 flags。
func LogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Value: Defaults.Log.Level,
			Usage: "日志级别: debug | info | warn | error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Value: Defaults.Log.Format,
			Usage: "日志格式: text | json",
		},
	}
}

// Load 加载配置（默认值 → 配置文件 → CFGTPL_ 环境变量 → CLI flags）并初始化日志。
func Load(cmd *cli.Command) (*config.Config, error) {
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), version.AppRawName,
		cfgm.WithEnvPrefix(EnvPrefix),
	)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := Setup(cfg.Log, os.Stderr); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Setup 按配置安装默认 slog handler。
func Setup(cfg config.LogConfig, w io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("invalid log format %q", cfg.Format)
	}
	slog.SetDefault(slog.New(handler))

	return nil
}

// LoadSchema 读取配置中的 schema。
func LoadSchema(cfg *config.Config) (schema.Schema, error) {
	sch, err := schema.Load(cfg.Schema)
	if err != nil {
		return schema.Schema{}, err
	}
	slog.Debug("Loaded schema", "path", cfg.Schema, "tokens", len(sch.Tokens))

	return sch, nil
}

// NewEnv 按配置创建环境变量源。
func NewEnv(cfg *config.Config) (*source.Env, error) {
	var opts []source.EnvOption
	if cfg.Env.Prefix != "" {
		opts = append(opts, source.WithPrefix(cfg.Env.Prefix))
	}
	if cfg.Env.File != "" {
		opts = append(opts, source.WithDotEnv(cfg.Env.File))
	}

	env, err := source.NewEnv(opts...)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded environment", "prefix", cfg.Env.Prefix, "file", cfg.Env.File, "vars", env.Len())

	return env, nil
}

// NewSource 创建替换值来源：环境变量优先，按提示模式追加交互输入。
func NewSource(cfg *config.Config) (source.Source, error) {
	env, err := NewEnv(cfg)
	if err != nil {
		return nil, err
	}

	interactive, err := Interactive(cfg.Prompt.Mode)
	if err != nil {
		return nil, err
	}
	if !interactive {
		return env, nil
	}

	return source.Chain{env, source.NewPrompt(prompt.NewTerminal(Stdin, os.Stderr))}, nil
}

// Interactive 根据提示模式判断是否交互；auto 模式下仅当 stdin 为终端时交互。
func Interactive(mode string) (bool, error) {
	switch strings.ToLower(mode) {
	case config.PromptAlways:
		return true, nil
	case config.PromptNever:
		return false, nil
	case "", config.PromptAuto:
		f, ok := Stdin.(*os.File)

		return ok && prompt.IsTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid prompt mode %q", mode)
	}
}
