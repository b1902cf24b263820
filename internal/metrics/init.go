package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	mediaTypes := []string{"video", "audio", "image", "other"}
	for _, mt := range mediaTypes {
		PlaybackStartsTotal.WithLabelValues(mt)
		PlaybackIgnoredTotal.WithLabelValues(mt, "start")
		PlaybackIgnoredTotal.WithLabelValues(mt, "stop")
	}

	for _, r := range []string{"matched", "unmatched"} {
		PlaybackStopsTotal.WithLabelValues(r)
	}

	for _, d := range []string{"deleted", "failed", "not_played", "under_played", "folder_not_allowed", "not_a_file"} {
		DeletionDecisionsTotal.WithLabelValues(d)
	}

	for _, m := range []string{"trash", "permanent"} {
		DeletionAttemptsTotal.WithLabelValues(m)
		DeletionSuccessTotal.WithLabelValues(m)
		DeletionFailuresTotal.WithLabelValues(m)
		DeletionDuration.WithLabelValues(m)
	}

	// --- Filesystem operation metrics (per volume × operation) ---
	fsOps := []string{"trash", "remove", "stat"}
	for _, op := range fsOps {
		FilesystemOperationDuration.WithLabelValues("unknown", op)
		FilesystemOperationErrors.WithLabelValues("unknown", op)
		FilesystemStaleErrors.WithLabelValues("unknown", op)
	}

	for _, op := range []string{"get_setting", "set_setting", "list_settings", "initialize_schema"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}
}
