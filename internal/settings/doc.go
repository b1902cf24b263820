// Package settings holds the user-editable autodelete settings.
//
// A [Store] keeps the current [Settings] in memory, loads them from a
// [Backend] at startup and persists every change. Missing or malformed
// stored values fall back to the defaults, so playback tracking never fails
// because of bad settings. The store implements autodelete.ConfigProvider.
package settings
