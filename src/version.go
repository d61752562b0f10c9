package ttpower

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via `-ldflags "-X 'github.com/kf7lze/ttpower/src.TTPOWER_VERSION=X'"`
var TTPOWER_VERSION string

func buildSettingOrDefault(bi *debug.BuildInfo, key string, defaultValue string) string {
	if bi == nil {
		return defaultValue
	}

	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}

	return defaultValue
}

/*-------------------------------------------------------------------
 *
 * Name:        VersionString
 *
 * Purpose:    	One line identifying this build, for --version and
 *		the startup banner.
 *
 *--------------------------------------------------------------------*/

func VersionString() string {
	var buildInfo, _ = debug.ReadBuildInfo()

	var buildCommit = buildSettingOrDefault(buildInfo, "vcs.revision", "UNKNOWN")
	if buildSettingOrDefault(buildInfo, "vcs.modified", "false") == "true" {
		buildCommit += "-DIRTY"
	}

	var version = TTPOWER_VERSION
	if version == "" {
		version = fmt.Sprintf("%d.%d", MAJOR_VERSION, MINOR_VERSION)
	}

	return fmt.Sprintf("ttpower version %s (revision %s)", version, buildCommit)
}
