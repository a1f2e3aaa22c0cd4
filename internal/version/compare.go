package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckConfigCompatibility checks if the screener and a scan config file
// declare compatible versions. Returns nil if compatible, error with
// details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
func CheckConfigCompatibility(screenerVersion, configVersion string) error {
	// Strip 'v' prefix if present for consistency
	screenerVersion = strings.TrimPrefix(screenerVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	// Skip version check for "main" (development builds)
	if screenerVersion == "main" || configVersion == "main" {
		return nil
	}

	screenerSemver, err := semver.NewVersion(screenerVersion)
	if err != nil {
		return fmt.Errorf("invalid screener version '%s': %w", screenerVersion, err)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return fmt.Errorf("invalid config version '%s': %w", configVersion, err)
	}

	// Check major version match
	if screenerSemver.Major() != configSemver.Major() {
		return fmt.Errorf("major version mismatch: screener is %d.x.x but config declares %d.x.x",
			screenerSemver.Major(), configSemver.Major())
	}

	// Check minor version match
	if screenerSemver.Minor() != configSemver.Minor() {
		return fmt.Errorf("minor version mismatch: screener is %d.%d.x but config declares %d.%d.x",
			screenerSemver.Major(), screenerSemver.Minor(),
			configSemver.Major(), configSemver.Minor())
	}

	// Patch versions can differ, so we're compatible
	return nil
}
