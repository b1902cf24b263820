// Package mediatypes classifies playable resources as video, audio or image
// and decides whether a class is enabled for automatic deletion.
//
// This package exists as a dependency-free foundation that can be imported by
// other packages without creating import cycles.
//
// # Media Types
//
//	mediatypes.MediaTypeVideo // mp4, mkv, avi, ...
//	mediatypes.MediaTypeAudio // mp3, flac, ogg, ...
//	mediatypes.MediaTypeImage // jpg, png, heic, ...
//	mediatypes.MediaTypeOther // anything else
//
// The host normally declares the type of a resource; [Resolve] falls back to
// the file extension when it does not.
//
// # Gate
//
// [Flags] holds the per-type enable switches from the settings store. Plays of
// a disabled type are ignored on both the start and the stop notification:
//
//	if !flags.Allows(mediatypes.Resolve(n.MediaType, n.Path)) {
//	    return
//	}
package mediatypes
