package models

// Session represents one imported training session: the scalar summaries and
// the encoded path produced by the pipeline, keyed by a generated identifier.
type Session struct {
	ID                       string  `json:"id" db:"id"`
	SourceFile               string  `json:"sourceFile" db:"source_file"`
	ImportedAt               string  `json:"importedAt" db:"imported_at"`
	CleanPointCount          int     `json:"cleanPointCount" db:"clean_point_count"`
	TotalDistanceMeters      float64 `json:"totalDistanceMeters" db:"total_distance_m"`
	TotalElevationGainMeters float64 `json:"totalElevationGainMeters" db:"total_elevation_gain_m"`
	TotalDurationSeconds     float64 `json:"totalDurationSeconds" db:"total_duration_s"`
	MaxHeartRateBpm          int     `json:"maxHeartRateBpm" db:"max_heart_rate"`
	HasHeartRate             bool    `json:"hasHeartRate" db:"has_heart_rate"`
	EncodedPath              string  `json:"encodedPath" db:"encoded_path"`
}

// SessionFilter represents filter parameters for listing sessions
type SessionFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// SessionsResponse represents a paginated response of sessions
type SessionsResponse struct {
	Data       []Session `json:"data"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
}

// ImportSummary aggregates per-file outcomes of a batch import run.
// One bad file never aborts the batch; it just lands in one of the buckets.
type ImportSummary struct {
	Files    int `json:"files"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}
