package settings

import (
	"errors"
	"fmt"
	"strings"

	"autodelete-after-play/internal/autodelete"
	"autodelete-after-play/internal/mediatypes"
)

// Stored keys.
const (
	KeyPercentPlayed = "percentPlayedRequired"
	KeyFolderPaths   = "autoDeleteFolderPaths"
	KeyRecycle       = "moveToRecycleBin"
	KeyDeleteVideo   = "deleteVideo"
	KeyDeleteAudio   = "deleteAudio"
	KeyDeleteImage   = "deleteImage"
)

// FolderSeparator separates entries of AutoDeleteFolderPaths.
const FolderSeparator = ";"

// ErrInvalid is returned for settings that cannot be saved.
var ErrInvalid = errors.New("invalid settings")

// Settings are the user-editable options.
type Settings struct {
	PercentPlayedRequired int    `json:"percentPlayedRequired"`
	AutoDeleteFolderPaths string `json:"autoDeleteFolderPaths"`
	MoveToRecycleBin      bool   `json:"moveToRecycleBin"`
	DeleteVideo           bool   `json:"deleteVideo"`
	DeleteAudio           bool   `json:"deleteAudio"`
	DeleteImage           bool   `json:"deleteImage"`
}

// Defaults returns 80%, no folder restriction, trash enabled and every
// media type enabled.
func Defaults() Settings {
	return Settings{
		PercentPlayedRequired: autodelete.DefaultMinPlayedPercent,
		AutoDeleteFolderPaths: "",
		MoveToRecycleBin:      autodelete.DefaultRecycleEnabled,
		DeleteVideo:           true,
		DeleteAudio:           true,
		DeleteImage:           true,
	}
}

// Validate checks the value ranges.
func (s Settings) Validate() error {
	if s.PercentPlayedRequired < 0 || s.PercentPlayedRequired > 100 {
		return fmt.Errorf("%w: %s must be between 0 and 100, got %d",
			ErrInvalid, KeyPercentPlayed, s.PercentPlayedRequired)
	}
	return nil
}

// Policy converts the settings into the engine's policy.
func (s Settings) Policy() autodelete.PolicyConfig {
	return autodelete.PolicyConfig{
		MinPlayedPercent:   s.PercentPlayedRequired,
		AllowedFolderPaths: SplitFolders(s.AutoDeleteFolderPaths),
		RecycleEnabled:     s.MoveToRecycleBin,
	}
}

// MediaFlags returns the per media type enable flags.
func (s Settings) MediaFlags() mediatypes.Flags {
	return mediatypes.Flags{
		Video: s.DeleteVideo,
		Audio: s.DeleteAudio,
		Image: s.DeleteImage,
	}
}

// SplitFolders splits a ";" separated list, trimming entries and dropping
// blank ones.
func SplitFolders(list string) []string {
	var folders []string
	for _, f := range strings.Split(list, FolderSeparator) {
		if f = strings.TrimSpace(f); f != "" {
			folders = append(folders, f)
		}
	}
	return folders
}
