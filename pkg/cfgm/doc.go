// Package cfgm 提供通用的分层配置加载。
//
// 按默认值、配置文件、环境变量与 CLI flags 逐层覆盖，
// 配置 key 统一使用 json tag，YAML 与 JSON(C) 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 选项设置，仅用户显式指定的 flag 生效
//
// # 快速开始
//
//	type Config struct {
//	    Template string    `json:"template" desc:"模板文件路径"`
//	    Log      LogConfig `json:"log"      desc:"日志"`
//	}
//
//	cfg, err := cfgm.LoadCmd(cmd, DefaultConfig(), "cfgtpl",
//	    cfgm.WithEnvPrefix("CFGTPL_"),
//	)
//
// # 配置文件
//
// [WithAppName] 生成的默认搜索路径见 [DefaultPaths]。文件内容在解析前
// 做 ${VAR:-default} 展开（见 templexp），[WithoutTemplateExpansion] 可关闭。
//
//	# .cfgtpl.yaml
//	template: deploy/appsettings.template.json
//	output: "${OUTPUT_DIR:-.}/appsettings.json"
//	env:
//	  file: .env
//
// # 环境变量与 CLI flags
//
// 同一个 key 的三种写法：
//
//	env.prefix  →  CFGTPL_ENV_PREFIX  →  --env-prefix
package cfgm
