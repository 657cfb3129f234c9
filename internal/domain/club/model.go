package club

// UnknownSlug identifies the catch-all club that riders are attached to
// when an upload names a club we do not know.
const UnknownSlug = "unknown"

// Club is a racing club. Grading is the ordered list of grades the club
// races, best grade first, as a comma separated string.
type Club struct {
	ID      int64
	Slug    string
	Name    string
	Website string
	ICalURL string
	Grading string
}

// Statistics summarises a club's activity.
type Statistics struct {
	CurrentMembers  int
	RacesRun        int
	ResultsRecorded int
}
