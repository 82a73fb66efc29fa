// Package token 解析配置模板中的占位符。
//
// 占位符语法为 __<identifier>__，且必须占据整个字符串值：
//
//	"__AuthSettings_Domain__"                     → Plain   (ID=AuthSettings_Domain)
//	"__AGIClientSettings_OpenAIServices_0__"      → Indexed (Base=AGIClientSettings_OpenAIServices, Index=0)
//	"https://__Host__/api"                        → NotToken（不支持部分插值）
//
// 标识符以字母或数字开头和结尾，中间允许字母、数字、'_'、'.'、'-'。
package token
