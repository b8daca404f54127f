package domain

// SyncStats counts the outcome of one synchronization run
type SyncStats struct {
	Processed int `json:"processed"`
	Saved     int `json:"saved"`
	Filtered  int `json:"filtered"`
	Errors    int `json:"errors"`
}
