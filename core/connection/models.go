package connection

// Capabilities is the backend's root document.
type Capabilities struct {
	APIVersion     string `json:"api_version"`
	BackendVersion string `json:"backend_version,omitempty"`
	Title          string `json:"title,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Collection is one entry of the backend's collection listing.
type Collection struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	License     string `json:"license,omitempty"`
}

// collectionsDocument is the wire shape of GET /collections.
type collectionsDocument struct {
	Collections []Collection `json:"collections"`
}

// Process describes one backend process. Description is rendered to markdown
// when the backend serves HTML.
type Process struct {
	ID          string `json:"id"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
}

// processesDocument is the wire shape of GET /processes.
type processesDocument struct {
	Processes []Process `json:"processes"`
}

// JobInfo is the backend's description of a batch job.
type JobInfo struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Status  string `json:"status,omitempty"`
	Created string `json:"created,omitempty"`
}

// jobsDocument is the wire shape of GET /jobs.
type jobsDocument struct {
	Jobs []JobInfo `json:"jobs"`
}

// jobResultsDocument is the wire shape of GET /jobs/{id}/results.
type jobResultsDocument struct {
	Assets map[string]struct {
		Href string `json:"href"`
	} `json:"assets"`
	// Links is the pre-1.0 shape: a plain list of download URLs.
	Links []string `json:"links,omitempty"`
}

// tokenDocument is the wire shape of GET /credentials/basic.
type tokenDocument struct {
	AccessToken string `json:"access_token"`
}
