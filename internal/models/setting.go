package models

// Setting is a key/value preference. UpdatedAt is stored and shipped but
// never compared: pulled settings overwrite unconditionally, and only
// allow-listed keys are pushed.
type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
}
