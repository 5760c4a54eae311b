// Package version 保存构建时注入的版本信息
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"golang.org/x/mod/semver"
)

const repoURL = "https://github.com/yeisme/tooled"

var (
	// Version 通过 -ldflags "-X" 注入，例如 v0.3.1
	Version = "dev"
	// GitCommit is the git commit hash
	GitCommit = "unknown"
	// BuildDate is when the binary was built (RFC3339)
	BuildDate = "unknown"
	// GoVersion is the Go version used to build the binary
	GoVersion = runtime.Version()
	// Platform is the target platform
	Platform = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
)

// Info contains version information
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// GetVersion 返回版本信息；未注入时尝试从模块构建信息中读取
func GetVersion() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  Platform,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "unknown" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "unknown" {
					info.BuildDate = s.Value
				}
			}
		}
	}
	return info
}

// canonical 返回带 v 前缀的合法语义化版本，不合法时返回空串
func canonical(v string) string {
	if v == "" {
		return ""
	}
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}

// ReleaseURL 返回版本对应的发布页面，开发版本返回仓库地址
func ReleaseURL(v string) string {
	if c := canonical(v); c != "" {
		return repoURL + "/releases/tag/" + c
	}
	return repoURL
}

// GetVersionString returns a formatted version string similar to golangci-lint
func GetVersionString() string {
	info := GetVersion()
	return fmt.Sprintf("tooled has version %s built with %s from %s (%s) on %s",
		info.Version,
		info.GoVersion,
		info.GitCommit,
		info.Platform,
		info.BuildDate,
	)
}

// GetShortVersionString returns a short version string similar to gh
func GetShortVersionString() string {
	info := GetVersion()

	dateStr := info.BuildDate
	if buildTime, err := time.Parse(time.RFC3339, info.BuildDate); err == nil {
		dateStr = buildTime.Format("2006-01-02")
	}

	return fmt.Sprintf("tooled version %s (%s)\n%s", info.Version, dateStr, ReleaseURL(info.Version))
}
