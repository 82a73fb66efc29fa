package cfgm

import (
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"
)

// applyFlags 将用户显式设置的 CLI flags 写入配置 map。
//
// flag 名称由配置 key 的 "." 替换为 "-" 得到：
//   - template → --template
//   - env.prefix → --env-prefix
//   - log.level → --log-level
//
// 支持 string、bool、int、int64、time.Duration 与 []string 字段，其余类型忽略。
// 命令未定义的 flag 同样忽略。
func applyFlags[T any](cmd *cli.Command, config map[string]any, defaultConfig T) {
	fields(reflect.TypeOf(defaultConfig), "", func(key string, typ reflect.Type) {
		name := strings.ReplaceAll(key, ".", "-")
		if !cmd.IsSet(name) {
			return
		}

		switch {
		case typ == durationType:
			setByPath(config, key, cmd.Duration(name))
		case typ.Kind() == reflect.String:
			setByPath(config, key, cmd.String(name))
		case typ.Kind() == reflect.Bool:
			setByPath(config, key, cmd.Bool(name))
		case typ.Kind() == reflect.Int:
			setByPath(config, key, cmd.Int(name))
		case typ.Kind() == reflect.Int64:
			setByPath(config, key, cmd.Int64(name))
		case typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.String:
			setByPath(config, key, cmd.StringSlice(name))
		}
	})
}
