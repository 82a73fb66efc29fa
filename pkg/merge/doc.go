// Package merge 在重新生成配置时保留运维调整过的默认值。
//
// 模板中的重试次数、熔断阈值等字面量会在每次生成时写入输出；
// 若上一次的输出已被人工调整，[Merge] 按 [Rule] 白名单把旧值写回，
// 同时仍然接收模板中的结构变化。
package merge
