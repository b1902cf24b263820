package metrics

import (
	"os"
	"time"

	"autodelete-after-play/internal/logging"
)

// StatsProvider reports the state that is sampled rather than counted.
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the sampled values.
type Stats struct {
	PendingSessions int
	TrashSupported  bool
}

// Collector periodically samples a StatsProvider and the database size.
type Collector struct {
	statsProvider StatsProvider
	dbPath        string
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector. dbPath may be empty.
func NewCollector(provider StatsProvider, dbPath string, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		dbPath:        dbPath,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the collection loop.
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop ends the collection loop. It must be called at most once.
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if size, ok := c.dbSize(); ok {
		DBSizeBytes.Set(float64(size))
	}

	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()
	PlaybackSessionsPending.Set(float64(stats.PendingSessions))
	if stats.TrashSupported {
		TrashSupported.Set(1)
	} else {
		TrashSupported.Set(0)
	}

	logging.Debug("Metrics collected: pending=%d, trash=%v", stats.PendingSessions, stats.TrashSupported)
}

// dbSize sums the database file and its WAL.
func (c *Collector) dbSize() (int64, bool) {
	if c.dbPath == "" {
		return 0, false
	}
	info, err := os.Stat(c.dbPath)
	if err != nil {
		return 0, false
	}
	size := info.Size()
	if wal, err := os.Stat(c.dbPath + "-wal"); err == nil {
		size += wal.Size()
	}
	return size, true
}
