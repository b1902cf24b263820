/*
Package filesystem removes played media files from local and NFS-mounted
volumes.

# Removal

[Local] implements both removal methods used by the autodelete engine:

  - MoveToTrash moves the file into a FreeDesktop.org style trash directory
    (files/ plus an info/<name>.trashinfo record holding the original path
    and deletion date). Name clashes get a numeric suffix. Moves across
    devices fall back to copy and remove.
  - DeletePermanently unlinks the file.

Directories are refused with [ErrNotRegularFile]. Neither method retries on
its own; the caller owns the retry loop.

# NFS

The stat that precedes each removal is retried on ESTALE (stale file handle)
with exponential backoff, 50ms to 500ms over 3 retries by default. Any other
error is returned immediately.

# Metrics

Operations are labelled with a volume name resolved by [VolumeResolver]
(longest prefix wins, "unknown" otherwise) and reported to an [Observer].
The metrics package provides the Prometheus implementation.

	local := filesystem.NewLocal(filesystem.DefaultTrashDir(),
	    filesystem.WithVolumes(filesystem.NewVolumeResolver(map[string]string{
	        "media": "/media",
	    })),
	    filesystem.WithObserver(metrics.NewFilesystemObserver()),
	)
*/
package filesystem
