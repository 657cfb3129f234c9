package rawdata

// Payload is a raw inbound document kept for audit and replay. EntityKey
// must be unique within a source and entity type.
type Payload struct {
	Source      string
	EntityType  string
	EntityKey   string
	ClubSlug    string
	RaceID      int64
	PayloadJSON string
	PayloadHash string
}
