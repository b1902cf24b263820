package mediatypes

import (
	"path/filepath"
	"strings"
)

// MediaType is the host's classification of a playable resource.
type MediaType string

const (
	// MediaTypeVideo represents a video resource.
	MediaTypeVideo MediaType = "video"
	// MediaTypeAudio represents an audio resource.
	MediaTypeAudio MediaType = "audio"
	// MediaTypeImage represents an image resource.
	MediaTypeImage MediaType = "image"
	// MediaTypeOther represents anything the host could not classify.
	MediaTypeOther MediaType = "other"
)

// ImageExtensions maps file extensions to whether they are image formats.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
	".tif":  true,
	".heic": true,
	".heif": true,
}

// VideoExtensions maps file extensions to whether they are video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
	".3gp":  true,
	".ts":   true,
	".m2ts": true,
	".vob":  true,
}

// AudioExtensions maps file extensions to whether they are audio formats.
var AudioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".m4a":  true,
	".aac":  true,
	".wav":  true,
	".wma":  true,
	".alac": true,
	".aiff": true,
}

// FromExtension returns the MediaType for a lowercase extension with its
// leading dot (e.g. ".mkv"). Unknown extensions yield MediaTypeOther.
func FromExtension(ext string) MediaType {
	switch {
	case VideoExtensions[ext]:
		return MediaTypeVideo
	case AudioExtensions[ext]:
		return MediaTypeAudio
	case ImageExtensions[ext]:
		return MediaTypeImage
	}
	return MediaTypeOther
}

// FromPath classifies a file by its extension.
func FromPath(path string) MediaType {
	return FromExtension(strings.ToLower(filepath.Ext(path)))
}

// Parse converts a host-supplied media type name. Matching is case
// insensitive; unrecognised names yield MediaTypeOther.
func Parse(s string) MediaType {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case MediaTypeVideo:
		return MediaTypeVideo
	case MediaTypeAudio:
		return MediaTypeAudio
	case MediaTypeImage:
		return MediaTypeImage
	}
	return MediaTypeOther
}

// Resolve returns the declared type when the host supplied one and falls
// back to the file extension otherwise.
func Resolve(declared, path string) MediaType {
	if mt := Parse(declared); mt != MediaTypeOther {
		return mt
	}
	return FromPath(path)
}

// Flags selects which media types are eligible for automatic deletion.
type Flags struct {
	Video bool `json:"deleteVideo"`
	Audio bool `json:"deleteAudio"`
	Image bool `json:"deleteImage"`
}

// Allows reports whether plays of mt should be tracked. Types outside
// video/audio/image are never filtered out.
func (f Flags) Allows(mt MediaType) bool {
	switch mt {
	case MediaTypeVideo:
		return f.Video
	case MediaTypeAudio:
		return f.Audio
	case MediaTypeImage:
		return f.Image
	}
	return true
}
