package model

// VersionInfo contains version and storage information for the application.
type VersionInfo struct {
	AppVersion      string     `json:"app_version"`
	DbVersion       *int64     `json:"db_version,omitempty"`
	HoldingsBackend string     `json:"holdings_backend"`
	Currencies      Currencies `json:"currencies"`
}
