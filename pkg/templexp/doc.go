// Package templexp 提供配置字符串的 Shell 参数展开。
//
// 只识别 ${...} 语法（不解析 $VAR），用于工具自身的配置文件与 schema 文件，
// 例如在 schema 中引用部署环境：
//
//	readiness:
//	  environments: ["${CFGTPL_ENFORCE_ENV:-Production}"]
//
// 语义参考 Bash 参数展开：
// https://www.gnu.org/software/bash/manual/bash.html#Shell-Parameter-Expansion
//
//  1. 支持嵌套展开与 "$$" 字面量
//  2. ":=" 赋值只写入传入的变量表
//  3. 无法识别的表达式保持原样
//
// 注意它与模板中的 __Token__ 占位符无关：后者由 pkg/resolve 处理。
package templexp
