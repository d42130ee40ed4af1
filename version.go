package jsonmap

import "fmt"

// Version of the jsonmap library
const Version = "1.0.0"

// Build information (set by ldflags during build)
var (
	GitCommit string
	BuildDate string
	BuildUser string
)

// VersionInfo returns formatted version information
func VersionInfo() string {
	if GitCommit == "" {
		return fmt.Sprintf("jsonmap v%s", Version)
	}
	return fmt.Sprintf("jsonmap v%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}

// FullVersionInfo returns the build details recorded at link time.
func FullVersionInfo() VersionDetails {
	return VersionDetails{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		BuildUser: BuildUser,
	}
}

// VersionDetails contains detailed version information
type VersionDetails struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	BuildUser string `json:"build_user,omitempty"`
}

// shortCommitLen is the abbreviated commit length used by String.
const shortCommitLen = 7

// String returns a short form such as "v1.0.0-abc1234 (2024-01-02)".
func (v VersionDetails) String() string {
	if v.GitCommit == "" {
		return fmt.Sprintf("v%s", v.Version)
	}
	commit := v.GitCommit
	if len(commit) > shortCommitLen {
		commit = commit[:shortCommitLen]
	}
	if v.BuildDate == "" {
		return fmt.Sprintf("v%s-%s", v.Version, commit)
	}
	return fmt.Sprintf("v%s-%s (%s)", v.Version, commit, v.BuildDate)
}
