package autodelete

import (
	"strings"
)

// Default policy values used when nothing has been configured.
const (
	DefaultMinPlayedPercent = 80
	DefaultRecycleEnabled   = true
)

// PolicyConfig is the read-only view of the deletion settings.
type PolicyConfig struct {
	// MinPlayedPercent is the share of the duration (0-100) that must be
	// exceeded before a file is deleted.
	MinPlayedPercent int `json:"minPlayedPercent"`
	// AllowedFolderPaths restricts deletion to files below one of these
	// prefixes. Empty means no restriction.
	AllowedFolderPaths []string `json:"allowedFolderPaths"`
	// RecycleEnabled moves files to the trash instead of removing them
	// when the platform supports it.
	RecycleEnabled bool `json:"recycleEnabled"`
}

// DefaultPolicy returns the policy used when settings cannot be loaded.
func DefaultPolicy() PolicyConfig {
	return PolicyConfig{
		MinPlayedPercent:   DefaultMinPlayedPercent,
		AllowedFolderPaths: []string{},
		RecycleEnabled:     DefaultRecycleEnabled,
	}
}

// Reason explains why a play did not lead to a deletion.
type Reason string

const (
	// ReasonNone means the policy allows the deletion.
	ReasonNone Reason = ""
	// ReasonNotPlayed means no positive play time was measured.
	ReasonNotPlayed Reason = "not_played"
	// ReasonUnderPlayed means the play did not exceed the required share.
	ReasonUnderPlayed Reason = "under_played"
	// ReasonFolderNotAllowed means the file is outside every allowed folder.
	ReasonFolderNotAllowed Reason = "folder_not_allowed"
	// ReasonNotAFile means the host did not report a file path.
	ReasonNotAFile Reason = "not_a_file"
)

// Decision is the pure result of evaluating a play against the policy.
type Decision struct {
	Delete             bool   `json:"delete"`
	Reason             Reason `json:"reason,omitempty"`
	ElapsedSeconds     int64  `json:"elapsedSeconds"`
	MinRequiredSeconds int64  `json:"minRequiredSeconds"`
}

// MinRequiredSeconds returns floor(duration * percent / 100).
func MinRequiredSeconds(fullDurationSeconds int64, minPlayedPercent int) int64 {
	return fullDurationSeconds * int64(minPlayedPercent) / 100
}

// Decide applies the played-time threshold and the folder policy. It does
// not touch the filesystem.
func Decide(filePath string, elapsedSeconds, fullDurationSeconds int64, cfg PolicyConfig) Decision {
	d := Decision{
		ElapsedSeconds:     elapsedSeconds,
		MinRequiredSeconds: MinRequiredSeconds(fullDurationSeconds, cfg.MinPlayedPercent),
	}

	if elapsedSeconds <= 0 {
		d.Reason = ReasonNotPlayed
		return d
	}
	if elapsedSeconds <= d.MinRequiredSeconds {
		d.Reason = ReasonUnderPlayed
		return d
	}
	if !FolderAllowed(filePath, cfg.AllowedFolderPaths) {
		d.Reason = ReasonFolderNotAllowed
		return d
	}

	d.Delete = true
	return d
}

// FolderAllowed reports whether filePath starts with one of the allowed
// prefixes. Prefixes are trimmed and compared case-sensitively as plain
// strings, so "/media/mov" also admits "/media/movies/x.mkv". Blank
// entries are ignored; a list with no usable entry admits every path.
func FolderAllowed(filePath string, allowed []string) bool {
	restricted := false
	for _, prefix := range allowed {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		restricted = true
		if strings.HasPrefix(filePath, prefix) {
			return true
		}
	}
	return !restricted
}
