package domain

// DefaultProfileName is the profile created when no configuration exists.
const DefaultProfileName = "Default"

// Profile is a named, independent container of mods. Each profile tracks
// its own mod list and enabled states; exactly one profile is current.
type Profile struct {
	Name string
	Mods []Mod
}

// GameFingerprint records the hash of a deterministic sample of game data
// files, used to detect that the base game changed underneath stored backups.
type GameFingerprint struct {
	Fingerprint string `json:"fingerprint"`
	Timestamp   string `json:"timestamp"`
	DataPath    string `json:"data_path"`
}
