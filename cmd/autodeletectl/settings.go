package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"autodelete-after-play/internal/settings"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the stored settings",
	}
	cmd.AddCommand(newSettingsShowCmd(opts), newSettingsSetCmd(opts))
	return cmd
}

func newSettingsShowCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, store, err := openStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer db.Close()

			return writeSettings(cmd.OutOrStdout(), store.Get(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

var settingFlags = []string{"percent", "folders", "recycle", "video", "audio", "image"}

func newSettingsSetCmd(opts *rootOptions) *cobra.Command {
	var (
		percent int
		folders string
		recycle bool
		video   bool
		audio   bool
		image   bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		Long:  "Change the settings named by flags. Settings without a flag keep their stored value.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			changed := false
			for _, name := range settingFlags {
				changed = changed || flags.Changed(name)
			}
			if !changed {
				return fmt.Errorf("nothing to change: pass at least one setting flag")
			}

			db, store, err := openStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer db.Close()

			updated, err := store.Update(cmd.Context(), func(next *settings.Settings) error {
				if flags.Changed("percent") {
					next.PercentPlayedRequired = percent
				}
				if flags.Changed("folders") {
					next.AutoDeleteFolderPaths = folders
				}
				if flags.Changed("recycle") {
					next.MoveToRecycleBin = recycle
				}
				if flags.Changed("video") {
					next.DeleteVideo = video
				}
				if flags.Changed("audio") {
					next.DeleteAudio = audio
				}
				if flags.Changed("image") {
					next.DeleteImage = image
				}
				return nil
			})
			if err != nil {
				return err
			}
			return writeSettings(cmd.OutOrStdout(), updated, false)
		},
	}

	cmd.Flags().IntVar(&percent, "percent", 0, "share of the duration that must be played, 0-100")
	cmd.Flags().StringVar(&folders, "folders", "", "allowed folder prefixes separated by \""+settings.FolderSeparator+"\"; empty allows all")
	cmd.Flags().BoolVar(&recycle, "recycle", false, "move played files to the trash instead of deleting them")
	cmd.Flags().BoolVar(&video, "video", false, "delete played video files")
	cmd.Flags().BoolVar(&audio, "audio", false, "delete played audio files")
	cmd.Flags().BoolVar(&image, "image", false, "delete viewed image files")
	return cmd
}

func writeSettings(w io.Writer, s settings.Settings, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	folders := settings.SplitFolders(s.AutoDeleteFolderPaths)
	_, err := fmt.Fprintf(w,
		"percent played required: %d%%\nallowed folders:          %s\nmove to trash:            %v\nvideo: %v  audio: %v  image: %v\n",
		s.PercentPlayedRequired, formatFolders(folders), s.MoveToRecycleBin,
		s.DeleteVideo, s.DeleteAudio, s.DeleteImage)
	return err
}

func formatFolders(folders []string) string {
	if len(folders) == 0 {
		return "(any)"
	}
	b, _ := json.Marshal(folders)
	return string(b)
}
