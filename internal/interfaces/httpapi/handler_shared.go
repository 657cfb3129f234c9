package httpapi

import (
	"context"
	"time"

	"github.com/openvelo/clubraces/internal/domain/club"
	"github.com/openvelo/clubraces/internal/domain/pointscore"
	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/domain/rider"
)

const dateLayout = "2006-01-02"

type clubDTO struct {
	ID      int64  `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Grading string `json:"grading,omitempty"`
}

type clubStatisticsDTO struct {
	CurrentMembers  int `json:"currentMembers"`
	RacesRun        int `json:"racesRun"`
	ResultsRecorded int `json:"resultsRecorded"`
}

type raceDTO struct {
	ID       int64  `json:"id"`
	ClubID   int64  `json:"clubId"`
	CourseID int64  `json:"courseId,omitempty"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Grading  string `json:"grading,omitempty"`
}

type resultDTO struct {
	ID         int64  `json:"id"`
	RaceID     int64  `json:"raceId"`
	RiderID    int64  `json:"riderId"`
	Grade      string `json:"grade"`
	UsualGrade string `json:"usualGrade,omitempty"`
	Number     int    `json:"number"`
	Place      int    `json:"place"`
	DNF        bool   `json:"dnf"`
}

type riderDTO struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	LicenceNo      string `json:"licenceNo,omitempty"`
	Gender         string `json:"gender,omitempty"`
	Classification string `json:"classification,omitempty"`
	ClubID         int64  `json:"clubId,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
}

type clubGradeDTO struct {
	ClubID  int64  `json:"clubId"`
	RiderID int64  `json:"riderId"`
	Grade   string `json:"grade"`
}

type pointScoreDTO struct {
	ID             int64  `json:"id"`
	ClubID         int64  `json:"clubId"`
	Name           string `json:"name"`
	Method         string `json:"method"`
	Points         []int  `json:"points"`
	SmallPoints    []int  `json:"smallpoints"`
	SmallThreshold int    `json:"smallThreshold"`
	Participation  int    `json:"participation"`
	SmallWin       int    `json:"smallWin"`
}

type tallyDTO struct {
	RiderID    int64 `json:"riderId"`
	Points     int   `json:"points"`
	EventCount int   `json:"eventCount"`
}

type standingsDTO struct {
	PointScore pointScoreDTO `json:"pointscore"`
	Standings  []tallyDTO    `json:"standings"`
}

type scoreEventDTO struct {
	Seq    int    `json:"seq"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

type auditDTO struct {
	PointScoreID int64           `json:"pointscoreId"`
	RiderID      int64           `json:"riderId"`
	Events       []scoreEventDTO `json:"events"`
}

type staffDTO struct {
	ID      int64  `json:"id"`
	RaceID  int64  `json:"raceId"`
	RiderID int64  `json:"riderId"`
	Role    string `json:"role"`
}

func clubToDTO(v club.Club) clubDTO {
	return clubDTO{
		ID:      v.ID,
		Slug:    v.Slug,
		Name:    v.Name,
		Website: v.Website,
		Grading: v.Grading,
	}
}

func raceToDTO(v race.Race) raceDTO {
	return raceDTO{
		ID:       v.ID,
		ClubID:   v.ClubID,
		CourseID: v.CourseID,
		Title:    v.Title,
		Date:     v.Date.UTC().Format(dateLayout),
		Status:   string(v.Status),
		Grading:  v.Grading,
	}
}

func resultToDTO(v race.Result) resultDTO {
	return resultDTO{
		ID:         v.ID,
		RaceID:     v.RaceID,
		RiderID:    v.RiderID,
		Grade:      v.Grade,
		UsualGrade: v.UsualGrade,
		Number:     v.Number,
		Place:      v.Place,
		DNF:        v.DNF,
	}
}

func riderToDTO(ctx context.Context, v rider.Rider, at time.Time) riderDTO {
	ctx, span := startSpan(ctx, "httpapi.riderToDTO")
	defer span.End()

	classification := ""
	if !v.DOB.IsZero() {
		classification = rider.Classification(v.Gender, v.DOB, at)
	}

	return riderDTO{
		ID:             v.ID,
		Username:       v.Username,
		FirstName:      v.FirstName,
		LastName:       v.LastName,
		LicenceNo:      v.LicenceNo,
		Gender:         v.Gender,
		Classification: classification,
		ClubID:         v.ClubID,
		Phone:          v.Phone,
		Email:          v.Email,
	}
}

func gradeToDTO(v rider.ClubGrade) clubGradeDTO {
	return clubGradeDTO{
		ClubID:  v.ClubID,
		RiderID: v.RiderID,
		Grade:   v.Grade,
	}
}

func pointScoreToDTO(v pointscore.PointScore) pointScoreDTO {
	return pointScoreDTO{
		ID:             v.ID,
		ClubID:         v.ClubID,
		Name:           v.Name,
		Method:         string(v.Method),
		Points:         append([]int(nil), v.Points...),
		SmallPoints:    append([]int(nil), v.SmallPoints...),
		SmallThreshold: v.SmallThreshold,
		Participation:  v.Participation,
		SmallWin:       v.SmallWin,
	}
}

func tallyToDTO(v pointscore.Tally) tallyDTO {
	return tallyDTO{
		RiderID:    v.RiderID,
		Points:     v.Points,
		EventCount: v.EventCount,
	}
}

func staffToDTO(v race.Staff) staffDTO {
	return staffDTO{
		ID:      v.ID,
		RaceID:  v.RaceID,
		RiderID: v.RiderID,
		Role:    string(v.Role),
	}
}
