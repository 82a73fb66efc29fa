package source

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/schema"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/resolve"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/tree"
)

// ReadDotEnvFile 读取 dotenv 文件。
func ReadDotEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return vars, nil
}

// ReadDotEnv 解析 KEY=VALUE 行，语法同 godotenv（注释、export 前缀、引号）。
func ReadDotEnv(r io.Reader) (map[string]string, error) {
	return godotenv.Parse(r)
}

// WriteDotEnv 按令牌顺序写出层级环境变量，跳过空值。
//
//	Settings__DbConnectionString="..."
//	AGIClientSettings__AzureOpenAIServices__0__Endpoint="..."
func WriteDotEnv(w io.Writer, toks []schema.Token, repl resolve.Replacements) error {
	bw := bufio.NewWriter(w)
	for _, tok := range toks {
		b, ok := repl[tok.Name]
		if !ok {
			continue
		}
		name := tok.EnvName()

		if !b.IsSequence() {
			if err := writeDotEnvLine(bw, name, b.Value()); err != nil {
				return err
			}

			continue
		}
		for i, item := range b.Items() {
			obj, ok := item.(*tree.Object)
			if !ok {
				if err := writeDotEnvLine(bw, fmt.Sprintf("%s__%d", name, i), item); err != nil {
					return err
				}

				continue
			}
			for field, val := range obj.All() {
				if err := writeDotEnvLine(bw, fmt.Sprintf("%s__%d__%s", name, i, field), val); err != nil {
					return err
				}
			}
		}
	}

	return bw.Flush()
}

func writeDotEnvLine(w *bufio.Writer, name string, v tree.Value) error {
	var val string
	switch typed := v.(type) {
	case nil:
		return nil
	case string:
		val = typed
	case tree.Number:
		val = string(typed)
	default:
		val = fmt.Sprint(typed)
	}
	if strings.TrimSpace(val) == "" {
		return nil
	}

	// godotenv 会把整数值规范化输出（007 → 7），这类值改用单引号保留原文
	if n, err := strconv.Atoi(val); err == nil && strconv.Itoa(n) != val {
		_, err := fmt.Fprintf(w, "%s='%s'\n", name, val)

		return err
	}

	line, err := godotenv.Marshal(map[string]string{name: val})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	_, err = fmt.Fprintln(w, line)

	return err
}
