package filesystem

import (
	"path/filepath"
	"sort"
	"strings"
)

const unknownVolume = "unknown"

// VolumeResolver maps file paths to configured volume names for metric
// labels. The longest matching mount wins.
type VolumeResolver struct {
	// sorted by path length, longest first
	mounts []volumeMount
}

type volumeMount struct {
	path string // absolute, with trailing slash
	name string
}

// NewVolumeResolver creates a resolver from a map of volume name to path.
func NewVolumeResolver(volumes map[string]string) *VolumeResolver {
	mounts := make([]volumeMount, 0, len(volumes))
	for name, path := range volumes {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !strings.HasSuffix(abs, "/") {
			abs += "/"
		}
		mounts = append(mounts, volumeMount{path: abs, name: name})
	}

	sort.Slice(mounts, func(i, j int) bool {
		return len(mounts[i].path) > len(mounts[j].path)
	})

	return &VolumeResolver{mounts: mounts}
}

// ParseVolumes reads a "name=/path,name=/path" list as used by the
// MEDIA_VOLUMES setting. Malformed entries are skipped.
func ParseVolumes(value string) map[string]string {
	volumes := make(map[string]string)
	for _, entry := range strings.Split(value, ",") {
		name, path, ok := strings.Cut(strings.TrimSpace(entry), "=")
		name = strings.TrimSpace(name)
		path = strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			continue
		}
		volumes[name] = path
	}
	return volumes
}

// Resolve returns the volume name for path, or "unknown".
func (vr *VolumeResolver) Resolve(path string) string {
	if vr == nil {
		return unknownVolume
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return unknownVolume
	}

	for _, m := range vr.mounts {
		if strings.HasPrefix(abs+"/", m.path) {
			return m.name
		}
	}
	return unknownVolume
}
