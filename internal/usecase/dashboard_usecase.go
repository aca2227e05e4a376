package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/brandon-wee/jobdash/internal/apperr"
	"github.com/brandon-wee/jobdash/internal/dto"
	"github.com/brandon-wee/jobdash/internal/identity"
	"github.com/brandon-wee/jobdash/internal/model"
	"github.com/brandon-wee/jobdash/internal/repository"
	"github.com/brandon-wee/jobdash/internal/service"
	"github.com/brandon-wee/jobdash/internal/util"
	"github.com/google/uuid"
)

// DashboardUsecase orchestrates a user's view: it hashes the external id into
// the scoped key, queries the store, and talks to the analysis backend. The
// raw user id only lives for the duration of a request.
type DashboardUsecase struct {
	jobRepo  *repository.JobRepository
	userRepo *repository.UserRepository
	backend  service.BackendServiceInterface
	scoper   *identity.Scoper
}

func NewDashboardUsecase(jobRepo *repository.JobRepository, userRepo *repository.UserRepository, backend service.BackendServiceInterface, scoper *identity.Scoper) *DashboardUsecase {
	return &DashboardUsecase{jobRepo: jobRepo, userRepo: userRepo, backend: backend, scoper: scoper}
}

// Locations bundles the map markers with the companies that could not be
// placed for lack of coordinates.
type Locations struct {
	Located []dto.LocationPoint   `json:"located"`
	Missing []dto.MissingLocation `json:"missing_locations"`
}

func (uc *DashboardUsecase) ListJobs(externalID string) ([]dto.JobRow, error) {
	return uc.listForKey(uc.scoper.Key(externalID))
}

// DeleteJob removes the association and re-reads the user's listings, so the
// caller always renders the post-delete state rather than its own guess.
func (uc *DashboardUsecase) DeleteJob(externalID, jobID string) ([]dto.JobRow, error) {
	key := uc.scoper.Key(externalID)
	if err := uc.jobRepo.DeleteForUser(key, jobID); err != nil {
		return nil, err
	}
	return uc.listForKey(key)
}

func (uc *DashboardUsecase) ListLocations(externalID string) (*Locations, error) {
	located, missing, err := uc.jobRepo.LocationsByUser(uc.scoper.Key(externalID))
	if err != nil {
		return nil, err
	}

	out := &Locations{Located: []dto.LocationPoint{}, Missing: []dto.MissingLocation{}}
	for _, loc := range located {
		out.Located = append(out.Located, dto.LocationPoint{
			CompanyID: loc.CompanyID,
			Name:      loc.Name,
			Latitude:  *loc.Latitude,
			Longitude: *loc.Longitude,
			Count:     loc.Count,
		})
	}
	for _, loc := range missing {
		out.Missing = append(out.Missing, dto.MissingLocation{CompanyID: loc.CompanyID, Name: loc.Name})
	}
	return out, nil
}

// ExportJobs renders the user's listing table in the requested download format.
func (uc *DashboardUsecase) ExportJobs(externalID, format string) (filename string, contentType string, content []byte, err error) {
	rows, err := uc.ListJobs(externalID)
	if err != nil {
		return "", "", nil, err
	}

	switch format {
	case "csv":
		content, err = util.JobsCSV(rows)
		return "job_listings.csv", "text/csv", content, err
	case "xlsx":
		content, err = util.JobsXLSX(rows)
		return "job_listings.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content, err
	default:
		return "", "", nil, apperr.Validation(fmt.Sprintf("unsupported export format %q", format))
	}
}

func (uc *DashboardUsecase) ScoreResume(ctx context.Context, externalID string, resume []byte) ([]dto.AnalysisResult, error) {
	return uc.backend.ScoreResume(ctx, resume, uc.scoper.Key(externalID))
}

func (uc *DashboardUsecase) GenerateCoverLetter(ctx context.Context, jobID string, resume []byte) (string, error) {
	return uc.backend.GenerateCoverLetter(ctx, jobID, resume)
}

// CoverLetterDocument generates the letter and wraps it as a DOCX download.
func (uc *DashboardUsecase) CoverLetterDocument(ctx context.Context, jobID string, resume []byte) ([]byte, error) {
	letter, err := uc.backend.GenerateCoverLetter(ctx, jobID, resume)
	if err != nil {
		return nil, err
	}
	return util.CoverLetterDOCX(letter)
}

func (uc *DashboardUsecase) RecommendSkills(ctx context.Context, resume []byte, occupation string) (string, []dto.SkillResource, error) {
	return uc.backend.RecommendSkills(ctx, resume, occupation)
}

func (uc *DashboardUsecase) Profile(externalID string) (*dto.Profile, error) {
	user, err := uc.userRepo.FindByKey(uc.scoper.Key(externalID))
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.KindNotFound {
			// First visit: the user has no stored profile yet.
			return &dto.Profile{DisplayName: externalID}, nil
		}
		return nil, err
	}
	return &dto.Profile{DisplayName: user.DisplayName}, nil
}

func (uc *DashboardUsecase) UpdateProfile(externalID, displayName string) (*dto.Profile, error) {
	if displayName == "" {
		return nil, apperr.Validation("display name must not be empty")
	}
	user, err := uc.userRepo.UpsertDisplayName(uc.scoper.Key(externalID), displayName)
	if err != nil {
		return nil, err
	}
	return &dto.Profile{DisplayName: user.DisplayName}, nil
}

func (uc *DashboardUsecase) listForKey(key string) ([]dto.JobRow, error) {
	listings, err := uc.jobRepo.ListByUser(key)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.JobRow, 0, len(listings))
	for _, listing := range listings {
		rows = append(rows, flattenListing(listing))
	}
	return rows, nil
}

// flattenListing collapses the nested company into flat columns. A listing
// without a loaded company keeps its own fields and leaves the company blank.
func flattenListing(listing model.JobListing) dto.JobRow {
	row := dto.JobRow{
		JobID:                 listing.JobID,
		Position:              listing.Position,
		TechnicalRequirements: listing.TechnicalRequirements,
		Experience:            listing.Experience,
		URL:                   listing.URL,
	}
	if listing.Company.ID != uuid.Nil {
		row.Company = listing.Company.Name
	}
	return row
}
