// Package handlers provides HTTP request handlers for the autodelete API.
//
// It includes handlers for:
//   - Play-start and play-stop notifications from the media host
//   - Reading and updating the auto-delete settings
//   - Listing pending playback sessions
//   - Health checks and version information
package handlers
