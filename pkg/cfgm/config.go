package cfgm

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/templexp"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/tree"
)

// DefaultPaths 返回默认配置文件的搜索顺序，先命中的文件生效。
//
// 提供 appName 时依次为：
//  1. ./.appname.yaml
//  2. ~/.appname.yaml
//  3. /etc/appname/config.yaml
//
// 之后总是追加 config.yaml 与 config/config.yaml。
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	return append(paths, "config.yaml", "config/config.yaml")
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
//
// 配置 key 由 json tag 定义。配置文件可以是 YAML、JSON 或 JSONC。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths(o.appName)
	}

	configMap := structToMap(defaultConfig)

	fileMap, path, err := o.readFirst()
	if err != nil {
		return nil, err
	}
	if fileMap != nil {
		mergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path, "templateExpansion", !o.noTemplateExpansion)
	} else {
		slog.Debug("No config file found, using defaults")
	}

	keys := collectConfigKeys(defaultConfig)
	if o.envPrefix != "" {
		for envKey, configPath := range envBindings(o.envPrefix, keys) {
			if val := os.Getenv(envKey); val != "" {
				setByPath(configMap, configPath, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", configPath)
			}
		}
	}

	if o.cmd != nil {
		applyFlags(o.cmd, configMap, defaultConfig)
	}

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadCmd 是 [Load] 的 CLI 版本，注入 [WithCommand]，appName 非空时注入 [WithAppName]。
//
//	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), "cfgtpl",
//	    cfgm.WithEnvPrefix("CFGTPL_"),
//	)
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	base := []Option{WithCommand(cmd)}
	if appName != "" {
		base = append(base, WithAppName(appName))
	}

	return Load(defaultConfig, append(base, opts...)...)
}

// readFirst 读取搜索路径中第一个存在的配置文件，全部不存在时返回 nil map。
func (o *options) readFirst() (map[string]any, string, error) {
	for _, path := range o.configPaths {
		if o.baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(o.baseDir, path)
		}

		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				continue
			}

			return nil, path, fmt.Errorf("read config file %s: %w", path, err)
		}

		if !o.noTemplateExpansion {
			expanded, err := templexp.ExpandTemplate(string(content))
			if err != nil {
				return nil, path, fmt.Errorf("expand template in %s: %w", path, err)
			}
			content = []byte(expanded)
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return nil, path, fmt.Errorf("parse config file %s: %w", path, err)
		}

		return fileMap, path, nil
	}

	return nil, "", nil
}

// envBindings 根据配置 key 生成 环境变量名 → key 映射。
//
// 示例 (前缀 "CFGTPL_")：
//   - env.prefix → CFGTPL_ENV_PREFIX
//   - prompt.mode → CFGTPL_PROMPT_MODE
func envBindings(prefix string, keys []string) map[string]string {
	r := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(r.Replace(key))] = key
	}

	return bindings
}

// parseConfigBytes 按扩展名解析配置文件，根节点必须是对象。
func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	doc, err := tree.Parse(content, tree.FormatOf(path))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return map[string]any{}, nil
	}

	configMap, ok := tree.Plain(doc).(map[string]any)
	if !ok {
		return nil, errors.New("config root must be object")
	}

	return configMap, nil
}
