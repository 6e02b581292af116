// Package report 将校验结果与版本检查结果渲染为终端可读的文本。
package report

import (
	"fmt"
	"strings"

	"github.com/creamcroissant/boxschema/internal/schema"
	"github.com/creamcroissant/boxschema/internal/versioncheck"
)

// Translator 按键名返回本地化文本，与 i18n.Manager.Translator 的返回值一致。
type Translator func(key string, args ...any) string

// FileResult 是单个文件的校验结果。Err 非空表示文件无法读取或解析。
type FileResult struct {
	Path   string
	Result *schema.Result
	Err    error
}

// Failed 报告该文件是否校验失败。
func (f FileResult) Failed() bool {
	return f.Err != nil || (f.Result != nil && !f.Result.Valid())
}

// Renderer 渲染报告。
type Renderer struct {
	tr Translator
}

// New 创建渲染器。tr 为空时直接输出键名。
func New(tr Translator) *Renderer {
	if tr == nil {
		tr = func(key string, args ...any) string {
			if len(args) > 0 {
				return key + " " + fmt.Sprint(args...)
			}
			return key
		}
	}
	return &Renderer{tr: tr}
}

// Validation 渲染一组文件的校验结果，末尾附带汇总行。
func (r *Renderer) Validation(files []FileResult) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(r.tr("report.title")))
	b.WriteString("\n")

	failed, warnings := 0, 0
	for _, f := range files {
		if f.Failed() {
			failed++
		}
		if f.Result != nil {
			warnings += len(f.Result.Warnings)
		}
		r.file(&b, f)
	}

	b.WriteString(styleMuted.Render(r.tr("report.summary", len(files), failed, warnings)))
	b.WriteString("\n")
	return b.String()
}

func (r *Renderer) file(b *strings.Builder, f FileResult) {
	if f.Result == nil {
		f.Result = &schema.Result{}
	}
	switch {
	case f.Err != nil:
		fmt.Fprintf(b, "%s %s: %s\n", StatusIcon("error"), styleFile.Render(f.Path), f.Err)
		return
	case !f.Result.Valid():
		fmt.Fprintf(b, "%s %s: %s\n", StatusIcon("error"), styleFile.Render(f.Path), r.tr("report.invalid", len(f.Result.Errors)))
	case len(f.Result.Warnings) > 0:
		fmt.Fprintf(b, "%s %s: %s\n", StatusIcon("warning"), styleFile.Render(f.Path), r.tr("report.warnings", len(f.Result.Warnings)))
	default:
		fmt.Fprintf(b, "%s %s: %s\n", StatusIcon("ok"), styleFile.Render(f.Path), r.tr("report.valid"))
	}

	for _, e := range f.Result.Errors {
		b.WriteString(styleDetail.Render(r.errorLine(e)))
		b.WriteString("\n")
	}
	for _, w := range f.Result.Warnings {
		line := fmt.Sprintf("%s %s: %s", styleWarning.Render(r.tr("warning.deprecated")), stylePath.Render(schema.DisplayPath(w.Path)), w.Message)
		b.WriteString(styleDetail.Render(line))
		b.WriteString("\n")
	}
}

func (r *Renderer) errorLine(e *schema.Error) string {
	msg := r.tr("error." + string(e.Type))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	switch {
	case e.Expected != "" && e.Actual != "":
		msg += " (" + r.tr("report.expected_got", e.Expected, e.Actual) + ")"
	case e.Expected != "":
		msg += " (" + r.tr("report.expected", e.Expected) + ")"
	case e.Actual != "":
		msg += " (" + r.tr("report.got", e.Actual) + ")"
	}
	return fmt.Sprintf("%s %s: %s", styleError.Render("•"), stylePath.Render(schema.DisplayPath(e.Path)), msg)
}

// Versions 渲染版本一致性检查结果，每处不一致占一行。
func (r *Renderer) Versions(rep *versioncheck.Report) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(r.tr("versions.title")))
	b.WriteString("\n")
	if rep.OK() {
		fmt.Fprintf(&b, "%s %s\n", StatusIcon("ok"), r.tr("versions.ok", len(rep.References), rep.Expected))
		return b.String()
	}
	for _, m := range rep.Mismatches {
		location := fmt.Sprintf("%s:%d", m.File, m.Line)
		fmt.Fprintf(&b, "%s %s %s %s\n",
			StatusIcon("error"),
			stylePath.Render(location),
			styleMuted.Render("["+m.Pattern+"]"),
			r.tr("versions.mismatch", m.Found, m.Expected),
		)
	}
	return b.String()
}
