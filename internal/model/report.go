package model

// PhotoRef is the slim photo reference carried on a comparison side.
type PhotoRef struct {
	ID            string  `json:"id"`
	OriginalPath  string  `json:"original_path"`
	ThumbnailPath *string `json:"thumbnail_path,omitempty"`
	State         *string `json:"state,omitempty"`
}

// ComparisonPair aligns one before-side and one after-side photo under a
// (position, state) composite key. Either side may be nil when the key only
// occurs in one of the two visits. A photo with no state keys as state "",
// indistinguishable from an explicit empty state.
type ComparisonPair struct {
	Position string    `json:"position"`
	State    *string   `json:"state,omitempty"`
	Before   *PhotoRef `json:"before,omitempty"`
	After    *PhotoRef `json:"after,omitempty"`
}

// ReportFile describes a generated report artifact in object storage.
type ReportFile struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// CostLine is one cost contribution to a rollup, as submitted by the live
// cost preview. The rollup never mutates lines, it only folds them.
type CostLine struct {
	Cost float64 `json:"cost"`
}
