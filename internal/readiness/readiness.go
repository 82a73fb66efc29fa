// Package readiness 检查目标环境所需的令牌是否都已绑定。
//
// 检查只查询 Source，从不解析模板。
package readiness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/schema"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/source"
)

// ErrNotReady 强制检查的环境缺少必填令牌。
var ErrNotReady = errors.New("required tokens are not set")

// Report 检查结果。
type Report struct {
	Environment string   `json:"environment"`
	Enforced    bool     `json:"enforced"`
	Required    []string `json:"required"`
	Missing     []string `json:"missing"`
}

// Ready 报告是否没有缺失项。
func (r Report) Ready() bool {
	return len(r.Missing) == 0
}

// Check 查询 sch 中全部必填令牌。
//
// 目标环境在 sch.Readiness.Environments 中时，缺失项返回包装了
// [ErrNotReady] 的错误；其它环境只记录警告。
func Check(ctx context.Context, sch schema.Schema, environment string, src source.Source) (Report, error) {
	report := Report{
		Environment: environment,
		Enforced:    sch.Enforced(environment),
		Required:    sch.Required(),
	}

	missing, err := source.Missing(ctx, src, sch, report.Required)
	if err != nil {
		return report, err
	}
	report.Missing = missing

	if report.Ready() {
		slog.Info("Readiness check passed", "environment", environment, "required", len(report.Required))

		return report, nil
	}
	if !report.Enforced {
		slog.Warn("Required tokens missing", "environment", environment, "missing", missing)

		return report, nil
	}

	return report, fmt.Errorf("%w for %s: %s", ErrNotReady, environment, strings.Join(missing, ", "))
}
