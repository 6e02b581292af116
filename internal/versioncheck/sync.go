package versioncheck

import (
	"fmt"
	"os"

	"github.com/blang/semver/v4"
	"github.com/tidwall/sjson"
)

// Sync 将 version 写入 path 处 JSON 包清单的 version 字段，其余内容保持原样。
// 返回清单原有的版本；原版本与 version 相同时不写文件。
func Sync(path, version string) (previous string, changed bool, err error) {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return "", false, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, version, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("read manifest: %w", err)
	}
	// 清单缺少 version 字段时直接补上
	previous, _ = ManifestVersion(data)
	if previous == v.String() {
		return previous, false, nil
	}

	out, err := sjson.SetBytes(data, "version", v.String())
	if err != nil {
		return previous, false, fmt.Errorf("update manifest version: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return previous, false, fmt.Errorf("stat manifest: %w", err)
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return previous, false, fmt.Errorf("write manifest: %w", err)
	}
	return previous, true, nil
}
