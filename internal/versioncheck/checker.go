// Package versioncheck 检查文档、包清单与源码中的版本号是否与根配置声明的版本一致，
// 并可把声明版本同步写入包清单。
package versioncheck

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/tidwall/gjson"
	"go.uber.org/multierr"
)

var (
	// ErrMismatch 表示某处引用的版本与期望版本不一致。
	ErrMismatch = errors.New("version mismatch / 版本不一致")
	// ErrInvalidVersion 表示期望版本或清单中的版本无法解析。
	ErrInvalidVersion = errors.New("invalid version / 版本号无效")
)

// Pattern 描述一种版本引用写法。第一个捕获组为版本号。
type Pattern struct {
	Name   string
	Regexp *regexp.Regexp
	// MinorOnly 为 true 时只比较 major.minor，例如 "v1.11.x"。
	MinorOnly bool
}

// DefaultPatterns 是文档与源码中出现的全部版本引用写法。
var DefaultPatterns = []Pattern{
	{Name: "badge", Regexp: regexp.MustCompile(`badge/[Ss]ing--box-v?(\d+\.\d+\.\d+)`)},
	{Name: "minor series", Regexp: regexp.MustCompile(`[Ss]ing-box v(\d+\.\d+)\.x`), MinorOnly: true},
	{Name: "schema package", Regexp: regexp.MustCompile(`schema@v?(\d+\.\d+\.\d+)`)},
	{Name: "release download", Regexp: regexp.MustCompile(`releases/download/v(\d+\.\d+\.\d+)/`)},
	{Name: "cdn download", Regexp: regexp.MustCompile(`cdn\.jsdelivr\.net/npm/[^@\s]+@(\d+\.\d+\.\d+)/`)},
	{Name: "declared version", Regexp: regexp.MustCompile(`Version\s*=\s*"(\d+\.\d+\.\d+)"`)},
}

// Reference 是在文件中找到的一处版本引用。
type Reference struct {
	File    string
	Line    int
	Pattern string
	Found   string
	Match   bool
}

// Mismatch 是一处与期望版本不一致的引用。
type Mismatch struct {
	Reference
	Expected string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s:%d: %s reference %s does not match %s", m.File, m.Line, m.Pattern, m.Found, m.Expected)
}

func (m *Mismatch) Unwrap() error { return ErrMismatch }

// Report 汇总一次检查的结果。
type Report struct {
	Expected   string
	References []Reference
	Mismatches []*Mismatch
}

// OK 报告是否全部一致。
func (r *Report) OK() bool { return len(r.Mismatches) == 0 }

// Err 将全部不一致项合并为一个错误，没有时返回 nil。
func (r *Report) Err() error {
	var err error
	for _, m := range r.Mismatches {
		err = multierr.Append(err, m)
	}
	return err
}

// Checker 按期望版本检查一组文件。
type Checker struct {
	expected semver.Version
	raw      string
	patterns []Pattern
	manifest string
	logger   *slog.Logger
}

// Option 用于配置 Checker。
type Option func(*Checker)

// WithLogger 设置日志实例。
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPatterns 替换默认的引用写法。
func WithPatterns(patterns ...Pattern) Option {
	return func(c *Checker) {
		c.patterns = patterns
	}
}

// WithManifest 指定包清单路径，该文件按 JSON 读取 version 字段而不是按正则扫描。
func WithManifest(path string) Option {
	return func(c *Checker) {
		c.manifest = filepath.Clean(path)
	}
}

// NewChecker 创建检查器。expected 允许带 "v" 前缀。
func NewChecker(expected string, opts ...Option) (*Checker, error) {
	v, err := semver.ParseTolerant(expected)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, expected, err)
	}
	c := &Checker{
		expected: v,
		raw:      v.String(),
		patterns: DefaultPatterns,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Expected 返回规范化后的期望版本。
func (c *Checker) Expected() string { return c.raw }

// Run 检查全部文件，收集所有引用与不一致项，不会在第一处不一致时停止。
// 返回的错误只表示文件读取失败；不一致项通过 Report.Err 获取。
func (c *Checker) Run(files []string) (*Report, error) {
	report := &Report{Expected: c.raw}
	var readErr error
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			readErr = multierr.Append(readErr, fmt.Errorf("read %s: %w", file, err))
			continue
		}

		var refs []Reference
		if c.manifest != "" && filepath.Clean(file) == c.manifest {
			ref, err := c.CheckManifest(file, data)
			if err != nil {
				readErr = multierr.Append(readErr, err)
				continue
			}
			refs = []Reference{ref}
		} else {
			refs = c.CheckContent(file, data)
		}
		if len(refs) == 0 {
			c.logger.Warn("no version reference found", "file", file)
		}

		for _, ref := range refs {
			report.References = append(report.References, ref)
			if !ref.Match {
				report.Mismatches = append(report.Mismatches, &Mismatch{Reference: ref, Expected: c.raw})
			}
		}
	}
	c.logger.Info("version check finished",
		"expected", c.raw,
		"files", len(files),
		"references", len(report.References),
		"mismatches", len(report.Mismatches),
	)
	return report, readErr
}

// CheckContent 按行扫描文本，返回全部版本引用。同一位置被多个写法命中时只记录第一个。
func (c *Checker) CheckContent(name string, data []byte) []Reference {
	var refs []Reference
	for i, line := range strings.Split(string(data), "\n") {
		seen := map[int]bool{}
		type hit struct {
			offset int
			ref    Reference
		}
		var hits []hit
		for _, p := range c.patterns {
			for _, loc := range p.Regexp.FindAllStringSubmatchIndex(line, -1) {
				if len(loc) < 4 || loc[2] < 0 || seen[loc[2]] {
					continue
				}
				seen[loc[2]] = true
				found := line[loc[2]:loc[3]]
				hits = append(hits, hit{offset: loc[2], ref: Reference{
					File:    name,
					Line:    i + 1,
					Pattern: p.Name,
					Found:   found,
					Match:   c.matches(found, p.MinorOnly),
				}})
			}
		}
		sort.SliceStable(hits, func(a, b int) bool { return hits[a].offset < hits[b].offset })
		for _, h := range hits {
			refs = append(refs, h.ref)
		}
	}
	return refs
}

// CheckManifest 读取 JSON 包清单中的 version 字段。
func (c *Checker) CheckManifest(name string, data []byte) (Reference, error) {
	found, err := ManifestVersion(data)
	if err != nil {
		return Reference{}, fmt.Errorf("%s: %w", name, err)
	}
	return Reference{
		File:    name,
		Line:    manifestLine(data),
		Pattern: "manifest",
		Found:   found,
		Match:   c.matches(found, false),
	}, nil
}

func (c *Checker) matches(found string, minorOnly bool) bool {
	if minorOnly {
		found += ".0"
	}
	v, err := semver.ParseTolerant(found)
	if err != nil {
		return false
	}
	if minorOnly {
		return v.Major == c.expected.Major && v.Minor == c.expected.Minor
	}
	return v.Equals(c.expected)
}

// ManifestVersion 返回 package.json 中的 version 字段。
func ManifestVersion(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("%w: manifest is not valid JSON", ErrInvalidVersion)
	}
	res := gjson.GetBytes(data, "version")
	if !res.Exists() || res.Type != gjson.String {
		return "", fmt.Errorf("%w: manifest has no string version field", ErrInvalidVersion)
	}
	return res.String(), nil
}

// manifestLine 返回 "version" 键所在行，找不到时为 0。
func manifestLine(data []byte) int {
	for i, line := range strings.Split(string(data), "\n") {
		if strings.Contains(line, `"version"`) {
			return i + 1
		}
	}
	return 0
}
