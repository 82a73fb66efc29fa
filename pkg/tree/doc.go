// Package tree 提供有序的配置树模型。
//
// 与 map[string]any 不同，[Object] 保持 key 的原始顺序，
// 使渲染出的配置文件与模板逐行对应，便于 diff 审阅。
//
// # 解析
//
// [Parse] / [ParseFile] 支持两种格式：
//   - JSON：允许 // 与 /* */ 注释以及尾随逗号（JSONC），数字保留原文为 [Number]
//   - YAML：基于 yaml.Node 解析，保持映射顺序，别名展开
//
// # 输出
//
// [EncodeJSON] 输出两空格缩进的 JSON，不转义 <、>、&；
// [EncodeYAML] 输出两空格缩进的 YAML。
//
// # 转换
//
// [Plain] 将树转换为 map[string]any，便于交给 mapstructure 解码到结构体。
package tree
