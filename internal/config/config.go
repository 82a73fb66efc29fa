// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .cfgtpl.yaml / ~/.cfgtpl.yaml / /etc/cfgtpl/config.yaml 等
//  3. 环境变量 - CFGTPL_ 前缀，例如 CFGTPL_ENV_PREFIX
//  4. CLI flags - json key 中的 "." 替换为 "-"，例如 --env-prefix
package config

// 提示模式。
const (
	PromptAuto   = "auto"   // stdin 为终端时提示
	PromptAlways = "always" // 总是提示
	PromptNever  = "never"  // 只读取环境变量
)

// Config 应用配置。
type Config struct {
	Template string       `json:"template" desc:"模板文件路径 (JSON/JSONC/YAML)"`
	Output   string       `json:"output" desc:"输出文件路径，扩展名决定格式"`
	Existing string       `json:"existing" desc:"旧输出路径，为空时使用 output"`
	Schema   string       `json:"schema" desc:"令牌 schema 文件，为空时使用内置 schema"`
	DotEnv   string       `json:"dotenv" desc:"dotenv 导出路径"`
	Env      EnvConfig    `json:"env" desc:"环境变量来源"`
	Prompt   PromptConfig `json:"prompt" desc:"交互提示"`
	Log      LogConfig    `json:"log" desc:"日志"`
}

// EnvConfig 环境变量来源配置。
type EnvConfig struct {
	Prefix string `json:"prefix" desc:"只读取带此前缀的环境变量"`
	File   string `json:"file" desc:"额外读取的 dotenv 文件"`
}

// PromptConfig 交互提示配置。
type PromptConfig struct {
	Mode string `json:"mode" desc:"auto | always | never"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level  string `json:"level" desc:"debug | info | warn | error"`
	Format string `json:"format" desc:"text | json"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Template: "appsettings.template.json",
		Output:   "appsettings.json",
		DotEnv:   ".env",
		Prompt: PromptConfig{
			Mode: PromptAuto,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
