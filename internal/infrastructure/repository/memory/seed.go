package memory

import (
	"time"

	"github.com/openvelo/clubraces/internal/domain/club"
	"github.com/openvelo/clubraces/internal/domain/pointscore"
	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/domain/rider"
)

const (
	ClubIDWaratah  int64 = 1
	ClubIDLidcombe int64 = 2

	CourseIDLansdowne int64 = 1
	CourseIDHeffron   int64 = 2

	RaceIDWaratahOpener  int64 = 1
	RaceIDWaratahClassic int64 = 2

	PointScoreIDWaratahSeason int64 = 1
)

func SeedClubs() []club.Club {
	return []club.Club{
		{
			ID:      ClubIDWaratah,
			Slug:    "waratah",
			Name:    "Waratah Masters Cycling Club",
			Website: "https://waratahmasters.example.org",
			Grading: "A,A2,B,C,D,E,F",
		},
		{
			ID:      ClubIDLidcombe,
			Slug:    "lidcombe",
			Name:    "Lidcombe Auburn Cycle Club",
			Website: "https://lacc.example.org",
			Grading: "A,B,C,D",
		},
	}
}

func SeedCourses() []race.Course {
	return []race.Course{
		{ID: CourseIDLansdowne, Name: "Lansdowne Park", Location: "Lansdowne Park, Georges Hall"},
		{ID: CourseIDHeffron, Name: "Heffron Park", Location: "Heffron Park, Maroubra"},
	}
}

func SeedRiders() []rider.Rider {
	return []rider.Rider{
		{ID: 1, Username: "alan-moore-100001", FirstName: "Alan", LastName: "Moore", LicenceNo: "100001", Gender: "M", DOB: time.Date(1972, 3, 14, 0, 0, 0, 0, time.UTC), ClubID: ClubIDWaratah},
		{ID: 2, Username: "beth-nguyen-100002", FirstName: "Beth", LastName: "Nguyen", LicenceNo: "100002", Gender: "F", DOB: time.Date(1985, 7, 2, 0, 0, 0, 0, time.UTC), ClubID: ClubIDWaratah},
		{ID: 3, Username: "carl-ostermann-100003", FirstName: "Carl", LastName: "Ostermann", LicenceNo: "100003", Gender: "M", DOB: time.Date(1968, 11, 30, 0, 0, 0, 0, time.UTC), ClubID: ClubIDWaratah},
		{ID: 4, Username: "dana-petrov-100004", FirstName: "Dana", LastName: "Petrov", LicenceNo: "100004", Gender: "F", DOB: time.Date(1990, 1, 21, 0, 0, 0, 0, time.UTC), ClubID: ClubIDLidcombe},
	}
}

func SeedMemberships() []rider.Membership {
	return []rider.Membership{
		{ID: 1, RiderID: 1, ClubID: ClubIDWaratah, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Category: rider.MembershipRace},
		{ID: 2, RiderID: 2, ClubID: ClubIDWaratah, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Category: rider.MembershipRace},
		{ID: 3, RiderID: 3, ClubID: ClubIDWaratah, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Category: rider.MembershipRace},
		{ID: 4, RiderID: 4, ClubID: ClubIDLidcombe, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Category: rider.MembershipRace},
	}
}

func SeedGrades() []rider.ClubGrade {
	return []rider.ClubGrade{
		{ID: 1, ClubID: ClubIDWaratah, RiderID: 1, Grade: "B"},
		{ID: 2, ClubID: ClubIDWaratah, RiderID: 2, Grade: "B"},
		{ID: 3, ClubID: ClubIDWaratah, RiderID: 3, Grade: "C"},
		{ID: 4, ClubID: ClubIDLidcombe, RiderID: 4, Grade: "A"},
	}
}

func SeedRaces() []race.Race {
	return []race.Race{
		{
			ID:       RaceIDWaratahOpener,
			ClubID:   ClubIDWaratah,
			CourseID: CourseIDLansdowne,
			Title:    "Criterium Round 1",
			Date:     time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC),
			Status:   race.StatusPublished,
			Grading:  "A,A2,B,C,D,E,F",
		},
		{
			ID:       RaceIDWaratahClassic,
			ClubID:   ClubIDWaratah,
			CourseID: CourseIDHeffron,
			Title:    "Criterium Round 2",
			Date:     time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
			Status:   race.StatusPublished,
			Grading:  "A,A2,B,C,D,E,F",
		},
	}
}

func SeedPointScores() []pointscore.PointScore {
	return []pointscore.PointScore{
		{
			ID:             PointScoreIDWaratahSeason,
			ClubID:         ClubIDWaratah,
			Name:           "Criterium Point Score",
			Method:         pointscore.MethodStandard,
			Points:         pointscore.DefaultPoints(),
			SmallPoints:    pointscore.DefaultSmallPoints(),
			SmallThreshold: pointscore.DefaultSmallThreshold,
			Participation:  pointscore.DefaultParticipation,
			SmallWin:       pointscore.DefaultSmallWin,
		},
	}
}
