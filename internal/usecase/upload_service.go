package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/openvelo/clubraces/internal/domain/club"
	"github.com/openvelo/clubraces/internal/domain/pointscore"
	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/domain/rawdata"
	"github.com/openvelo/clubraces/internal/domain/rider"
)

// tempRiderPrefix marks rider identifiers that only exist inside one
// upload payload and must be resolved to real riders.
const tempRiderPrefix = "ID"

const uploadSource = "result-upload"

// RiderRef identifies a rider in an upload, either by database ID or by a
// temporary in-payload identifier.
type RiderRef struct {
	ID   int64
	Temp string
}

// IsTemp reports whether the reference is a temporary identifier.
func (r RiderRef) IsTemp() bool {
	return r.Temp != ""
}

// IsZero reports whether the reference is absent.
func (r RiderRef) IsZero() bool {
	return r.ID == 0 && r.Temp == ""
}

func (r RiderRef) String() string {
	if r.IsTemp() {
		return r.Temp
	}
	return strconv.FormatInt(r.ID, 10)
}

// ParseRiderRef reads a rider reference from its wire form: a numeric ID
// or a temporary identifier starting with "ID".
func ParseRiderRef(raw string) (RiderRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RiderRef{}, nil
	}
	if strings.HasPrefix(raw, tempRiderPrefix) {
		return RiderRef{Temp: raw}, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return RiderRef{}, fmt.Errorf("%w: rider reference %q is neither an ID nor a temporary identifier", ErrInvalidInput, raw)
	}
	return RiderRef{ID: id}, nil
}

// UploadRider is one rider record in an upload payload.
type UploadRider struct {
	Ref        RiderRef
	FirstName  string
	LastName   string
	LicenceNo  string
	ClubSlug   string
	Grade      string
	MemberDate string
	DOB        string
	Gender     string
	Phone      string
	Email      string
}

// UploadEntry is one result row in an upload payload.
type UploadEntry struct {
	Rider       RiderRef
	Grade       string
	Number      *int
	Place       int
	DNF         bool
	GradeChange bool
}

// UploadInput is a full result upload for one race.
type UploadInput struct {
	RaceID     int64
	Riders     []UploadRider
	Entries    []UploadEntry
	RawPayload string
}

// UploadSummary reports what an upload did. Errors holds the recoverable
// problems that were skipped over; RiderMap maps temporary identifiers to
// the rider IDs they resolved to.
type UploadSummary struct {
	Message  string
	Errors   []string
	RiderMap map[string]int64
}

// UploadService reconciles uploaded race results against the rider and
// race stores. An upload fully replaces the race's results, so repeating
// the same upload leaves the same state behind.
type UploadService struct {
	clubRepo       club.Repository
	riderRepo      rider.Repository
	membershipRepo rider.MembershipRepository
	gradeRepo      rider.GradeRepository
	raceRepo       race.Repository
	resultRepo     race.ResultRepository
	pointScoreRepo pointscore.Repository
	tally          *TallyService
	rawRepo        rawdata.Repository
	now            func() time.Time
}

func NewUploadService(
	clubRepo club.Repository,
	riderRepo rider.Repository,
	membershipRepo rider.MembershipRepository,
	gradeRepo rider.GradeRepository,
	raceRepo race.Repository,
	resultRepo race.ResultRepository,
	pointScoreRepo pointscore.Repository,
	tally *TallyService,
	rawRepo rawdata.Repository,
	now func() time.Time,
) *UploadService {
	if now == nil {
		now = time.Now
	}
	return &UploadService{
		clubRepo:       clubRepo,
		riderRepo:      riderRepo,
		membershipRepo: membershipRepo,
		gradeRepo:      gradeRepo,
		raceRepo:       raceRepo,
		resultRepo:     resultRepo,
		pointScoreRepo: pointScoreRepo,
		tally:          tally,
		rawRepo:        rawRepo,
		now:            now,
	}
}

// Upload processes one result upload. Structural problems abort the whole
// request; per-row problems are collected into the summary and the row is
// skipped.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (UploadSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UploadService.Upload")
	defer span.End()

	rc, found, err := s.raceRepo.GetByID(ctx, in.RaceID)
	if err != nil {
		return UploadSummary{}, fmt.Errorf("get race %d: %w", in.RaceID, err)
	}
	if !found {
		return UploadSummary{}, fmt.Errorf("%w: race %d", ErrNotFound, in.RaceID)
	}
	for i, entry := range in.Entries {
		if entry.Rider.IsZero() {
			return UploadSummary{}, fmt.Errorf("%w: entry %d has no rider", ErrInvalidInput, i)
		}
		if strings.TrimSpace(entry.Grade) == "" {
			return UploadSummary{}, fmt.Errorf("%w: entry %d has no grade", ErrInvalidInput, i)
		}
	}

	summary := UploadSummary{
		Errors:   []string{},
		RiderMap: map[string]int64{},
	}

	s.persistRawPayload(ctx, rc, in, &summary)

	for _, ur := range in.Riders {
		s.reconcileRider(ctx, rc, ur, &summary)
	}

	previousCount, err := s.resultRepo.CountByRace(ctx, rc.ID)
	if err != nil {
		return UploadSummary{}, fmt.Errorf("count existing results: %w", err)
	}
	if err := s.resultRepo.DeleteByRace(ctx, rc.ID); err != nil {
		return UploadSummary{}, fmt.Errorf("clear existing results: %w", err)
	}

	created, err := s.insertEntries(ctx, rc, in.Entries, &summary)
	if err != nil {
		return UploadSummary{}, err
	}

	if err := s.retally(ctx, rc, created, previousCount > 0); err != nil {
		return UploadSummary{}, err
	}

	summary.Message = fmt.Sprintf("Processed %d results for %s", len(created), rc.Label())
	return summary, nil
}

func (s *UploadService) persistRawPayload(ctx context.Context, rc race.Race, in UploadInput, summary *UploadSummary) {
	if s.rawRepo == nil || in.RawPayload == "" {
		return
	}
	sum := sha256.Sum256([]byte(in.RawPayload))
	hash := hex.EncodeToString(sum[:])
	err := s.rawRepo.Save(ctx, rawdata.Payload{
		Source:      uploadSource,
		EntityType:  "race-results",
		EntityKey:   fmt.Sprintf("race-%d-%s", rc.ID, hash[:12]),
		RaceID:      rc.ID,
		PayloadJSON: in.RawPayload,
		PayloadHash: hash,
	})
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("raw payload not persisted: %v", err))
	}
}

func (s *UploadService) reconcileRider(ctx context.Context, rc race.Race, ur UploadRider, summary *UploadSummary) {
	if ur.Ref.IsTemp() {
		s.createOrMatchRider(ctx, rc, ur, summary)
		return
	}
	s.updateRider(ctx, rc, ur, summary)
}

func (s *UploadService) createOrMatchRider(ctx context.Context, rc race.Race, ur UploadRider, summary *UploadSummary) {
	username := rider.MakeUsername(ur.FirstName, ur.LastName, ur.LicenceNo)
	if username == "" {
		summary.Errors = append(summary.Errors, fmt.Sprintf("rider %s has no usable name", ur.Ref))
		return
	}

	rd, found, err := s.riderRepo.GetByUsername(ctx, username)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("look up rider %s: %v", username, err))
		return
	}
	memberClub := s.resolveClub(ctx, ur.ClubSlug, summary)
	if !found {
		rd = rider.Rider{
			Username:  username,
			FirstName: strings.TrimSpace(ur.FirstName),
			LastName:  strings.TrimSpace(ur.LastName),
			LicenceNo: strings.TrimSpace(ur.LicenceNo),
			Gender:    strings.TrimSpace(ur.Gender),
			ClubID:    memberClub.ID,
			Phone:     strings.TrimSpace(ur.Phone),
			Email:     strings.TrimSpace(ur.Email),
		}
		if ur.DOB != "" {
			dob, err := time.Parse("2006-01-02", ur.DOB)
			if err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("rider %s has malformed date of birth %q", username, ur.DOB))
			} else {
				rd.DOB = dob
			}
		}
		rd, err = s.riderRepo.Create(ctx, rd)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("create rider %s: %v", username, err))
			return
		}
	} else if rd.ClubID != memberClub.ID && memberClub.ID != 0 {
		rd.ClubID = memberClub.ID
		if err := s.riderRepo.Update(ctx, rd); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("update rider %s: %v", username, err))
		}
	}

	s.recordMembership(ctx, rd.ID, memberClub.ID, ur.MemberDate, summary)
	if grade := strings.TrimSpace(ur.Grade); grade != "" {
		if _, _, err := s.ensureGrade(ctx, rc.ClubID, rd.ID, grade); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("grade rider %s: %v", username, err))
		}
	}
	summary.RiderMap[ur.Ref.Temp] = rd.ID
}

func (s *UploadService) updateRider(ctx context.Context, rc race.Race, ur UploadRider, summary *UploadSummary) {
	rd, found, err := s.riderRepo.GetByID(ctx, ur.Ref.ID)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("look up rider %d: %v", ur.Ref.ID, err))
		return
	}
	if !found {
		summary.Errors = append(summary.Errors, fmt.Sprintf("rider %d not found", ur.Ref.ID))
		return
	}

	changed := false
	if v := strings.TrimSpace(ur.FirstName); v != "" && v != rd.FirstName {
		rd.FirstName, changed = v, true
	}
	if v := strings.TrimSpace(ur.LastName); v != "" && v != rd.LastName {
		rd.LastName, changed = v, true
	}
	if v := strings.TrimSpace(ur.LicenceNo); v != "" && v != rd.LicenceNo {
		rd.LicenceNo, changed = v, true
	}
	if ur.ClubSlug != "" {
		memberClub := s.resolveClub(ctx, ur.ClubSlug, summary)
		if memberClub.ID != 0 && memberClub.ID != rd.ClubID {
			rd.ClubID, changed = memberClub.ID, true
		}
		s.recordMembership(ctx, rd.ID, memberClub.ID, ur.MemberDate, summary)
	}
	if changed {
		if err := s.riderRepo.Update(ctx, rd); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("update rider %d: %v", rd.ID, err))
		}
	}
}

// resolveClub maps an uploaded club slug to a club, falling back to the
// catch-all unknown club when the slug is not recognised.
func (s *UploadService) resolveClub(ctx context.Context, slug string, summary *UploadSummary) club.Club {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return club.Club{}
	}
	c, found, err := s.clubRepo.GetBySlug(ctx, slug)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("look up club %s: %v", slug, err))
		return club.Club{}
	}
	if found {
		return c
	}
	summary.Errors = append(summary.Errors, fmt.Sprintf("unknown club %s", slug))
	unknown, found, err := s.clubRepo.GetBySlug(ctx, club.UnknownSlug)
	if err == nil && found {
		return unknown
	}
	unknown, err = s.clubRepo.Create(ctx, club.Club{Slug: club.UnknownSlug, Name: "Unknown"})
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("create unknown club: %v", err))
		return club.Club{}
	}
	return unknown
}

func (s *UploadService) recordMembership(ctx context.Context, riderID, clubID int64, memberDate string, summary *UploadSummary) {
	if memberDate == "" || clubID == 0 {
		return
	}
	date, err := time.Parse("2006-01-02", memberDate)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("rider %d has malformed member date %q", riderID, memberDate))
		return
	}
	current, found, err := s.membershipRepo.Current(ctx, riderID)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("look up membership for rider %d: %v", riderID, err))
		return
	}
	if found && !date.After(current.Date) {
		return
	}
	_, err = s.membershipRepo.Create(ctx, rider.Membership{
		RiderID:  riderID,
		ClubID:   clubID,
		Date:     date,
		Category: rider.MembershipRace,
	})
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("record membership for rider %d: %v", riderID, err))
	}
}

// ensureGrade returns the rider's grade for the club, assigning the given
// grade when none is held yet.
func (s *UploadService) ensureGrade(ctx context.Context, clubID, riderID int64, grade string) (rider.ClubGrade, bool, error) {
	g, found, err := s.gradeRepo.Get(ctx, clubID, riderID)
	if err != nil {
		return rider.ClubGrade{}, false, err
	}
	if found {
		return g, false, nil
	}
	g, err = s.gradeRepo.Create(ctx, rider.ClubGrade{ClubID: clubID, RiderID: riderID, Grade: grade})
	if err != nil {
		if errors.Is(err, rider.ErrAlreadyGraded) {
			g, _, err = s.gradeRepo.Get(ctx, clubID, riderID)
			return g, false, err
		}
		return rider.ClubGrade{}, false, err
	}
	return g, true, nil
}

func (s *UploadService) insertEntries(ctx context.Context, rc race.Race, entries []UploadEntry, summary *UploadSummary) ([]race.Result, error) {
	created := make([]race.Result, 0, len(entries))
	usedNumbers := map[string]struct{}{}

	for _, entry := range entries {
		riderID := entry.Rider.ID
		if entry.Rider.IsTemp() {
			id, ok := summary.RiderMap[entry.Rider.Temp]
			if !ok {
				summary.Errors = append(summary.Errors, fmt.Sprintf("unresolved temporary rider %s", entry.Rider.Temp))
				continue
			}
			riderID = id
		}
		rd, found, err := s.riderRepo.GetByID(ctx, riderID)
		if err != nil {
			return nil, fmt.Errorf("get rider %d: %w", riderID, err)
		}
		if !found {
			summary.Errors = append(summary.Errors, fmt.Sprintf("rider %d not found", riderID))
			continue
		}

		grade := strings.TrimSpace(entry.Grade)
		usual, _, err := s.ensureGrade(ctx, rc.ClubID, rd.ID, grade)
		if err != nil {
			return nil, fmt.Errorf("grade rider %d: %w", rd.ID, err)
		}
		usualGrade := usual.Grade
		if entry.GradeChange && grade != usualGrade && grade != race.HelperGrade {
			if _, err := s.gradeRepo.Replace(ctx, rc.ClubID, rd.ID, grade); err != nil {
				return nil, fmt.Errorf("regrade rider %d: %w", rd.ID, err)
			}
			usualGrade = grade
		}

		number := race.DefaultNumber
		if entry.Number != nil && *entry.Number > 0 {
			number = *entry.Number
		}
		for {
			key := grade + "#" + strconv.Itoa(number)
			if _, taken := usedNumbers[key]; !taken {
				usedNumbers[key] = struct{}{}
				break
			}
			number += 200
		}

		res, err := s.resultRepo.Create(ctx, race.Result{
			RaceID:     rc.ID,
			RiderID:    rd.ID,
			Grade:      grade,
			UsualGrade: usualGrade,
			Number:     number,
			Place:      entry.Place,
			DNF:        entry.DNF,
		})
		if err != nil {
			if errors.Is(err, race.ErrDuplicateResult) {
				summary.Errors = append(summary.Errors, fmt.Sprintf("duplicate result for rider %d ignored", rd.ID))
				continue
			}
			return nil, fmt.Errorf("create result for rider %d: %w", rd.ID, err)
		}
		created = append(created, res)
	}
	return created, nil
}

// retally rescores the race's point scores. A reload replays each point
// score in full because the replaced results may change earlier standings;
// a first load only tallies the new results.
func (s *UploadService) retally(ctx context.Context, rc race.Race, created []race.Result, reload bool) error {
	pointScores, err := s.pointScoreRepo.ListByRace(ctx, rc.ID)
	if err != nil {
		return fmt.Errorf("list point scores for race %d: %w", rc.ID, err)
	}
	for _, ps := range pointScores {
		if reload {
			if err := s.tally.Recalculate(ctx, ps.ID); err != nil {
				return fmt.Errorf("recalculate point score %d: %w", ps.ID, err)
			}
			continue
		}
		for _, res := range created {
			if err := s.tally.Tally(ctx, ps.ID, res); err != nil {
				return fmt.Errorf("tally point score %d: %w", ps.ID, err)
			}
		}
	}
	return nil
}
