package domain

import "time"

// RunRecord captures the outcome of one successful pipeline run. Records
// are keyed by archive name in the run manifest so that consecutive runs
// of the same project can be compared for reproducibility.
type RunRecord struct {
	Archive        string            `json:"archive"`
	Checksum       string            `json:"checksum"`
	ArtifactHashes map[string]string `json:"artifact_hashes,omitempty"`
	Duration       time.Duration     `json:"duration"`
	Timestamp      time.Time         `json:"timestamp"`
}
