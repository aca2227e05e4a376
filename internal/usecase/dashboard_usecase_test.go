package usecase_test

import (
	"context"
	"testing"

	"github.com/brandon-wee/jobdash/internal/apperr"
	"github.com/brandon-wee/jobdash/internal/dto"
	"github.com/brandon-wee/jobdash/internal/identity"
	"github.com/brandon-wee/jobdash/internal/model"
	"github.com/brandon-wee/jobdash/internal/repository"
	"github.com/brandon-wee/jobdash/internal/usecase"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeBackend struct {
	scoreResults []dto.AnalysisResult
	letter       string
	skills       string
	resources    []dto.SkillResource
	err          error
}

func (f *fakeBackend) ScoreResume(ctx context.Context, resume []byte, userKey string) ([]dto.AnalysisResult, error) {
	return f.scoreResults, f.err
}

func (f *fakeBackend) GenerateCoverLetter(ctx context.Context, jobID string, resume []byte) (string, error) {
	return f.letter, f.err
}

func (f *fakeBackend) RecommendSkills(ctx context.Context, resume []byte, occupation string) (string, []dto.SkillResource, error) {
	return f.skills, f.resources, f.err
}

func newFixture(t *testing.T, backend *fakeBackend) (*usecase.DashboardUsecase, *gorm.DB, *identity.Scoper) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Company{}, &model.JobListing{}, &model.UserJob{}))

	scoper, err := identity.NewScoper("test-secret")
	require.NoError(t, err)

	uc := usecase.NewDashboardUsecase(
		repository.NewJobRepository(db),
		repository.NewUserRepository(db),
		backend,
		scoper,
	)
	return uc, db, scoper
}

func seedUserListing(t *testing.T, db *gorm.DB, userKey, jobID, position, companyName string) {
	t.Helper()
	var company model.Company
	require.NoError(t, db.Where(model.Company{Name: companyName}).FirstOrCreate(&company).Error)
	listing := model.JobListing{
		JobID:     jobID,
		Position:  position,
		URL:       "https://jobs.example.com/" + jobID,
		CompanyID: company.ID,
	}
	require.NoError(t, db.Create(&listing).Error)
	require.NoError(t, db.Create(&model.UserJob{UserKey: userKey, JobListingID: listing.ID}).Error)
}

func TestListJobs_FlattensCompany(t *testing.T) {
	uc, db, scoper := newFixture(t, &fakeBackend{})
	seedUserListing(t, db, scoper.Key("user-a"), "job-1", "Backend Engineer", "Acme")

	rows, err := uc.ListJobs("user-a")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Backend Engineer", rows[0].Position)
	assert.Equal(t, "Acme", rows[0].Company)
	assert.Equal(t, "job-1", rows[0].JobID)
}

func TestListJobs_EmptyForUnknownUser(t *testing.T) {
	uc, db, scoper := newFixture(t, &fakeBackend{})
	seedUserListing(t, db, scoper.Key("user-a"), "job-1", "Backend Engineer", "Acme")

	rows, err := uc.ListJobs("user-b")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDeleteJob_ReturnsRefreshedRows(t *testing.T) {
	uc, db, scoper := newFixture(t, &fakeBackend{})
	key := scoper.Key("user-a")
	seedUserListing(t, db, key, "job-1", "Backend Engineer", "Acme")
	seedUserListing(t, db, key, "job-2", "Data Engineer", "Globex")

	rows, err := uc.DeleteJob("user-a", "job-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "job-2", rows[0].JobID)
}

func TestDeleteJob_NonExistentIsSuccess(t *testing.T) {
	uc, _, _ := newFixture(t, &fakeBackend{})

	rows, err := uc.DeleteJob("user-a", "no-such-job")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListLocations_SplitsMissing(t *testing.T) {
	uc, db, scoper := newFixture(t, &fakeBackend{})
	key := scoper.Key("user-a")

	lat, lng := 1.30, 103.85
	located := model.Company{Name: "Globex", Latitude: &lat, Longitude: &lng}
	require.NoError(t, db.Create(&located).Error)
	unlocated := model.Company{Name: "Acme"}
	require.NoError(t, db.Create(&unlocated).Error)

	for i, company := range []model.Company{located, located, unlocated} {
		listing := model.JobListing{
			JobID:     []string{"job-1", "job-2", "job-3"}[i],
			Position:  "Engineer",
			CompanyID: company.ID,
		}
		require.NoError(t, db.Create(&listing).Error)
		require.NoError(t, db.Create(&model.UserJob{UserKey: key, JobListingID: listing.ID}).Error)
	}

	locations, err := uc.ListLocations("user-a")
	require.NoError(t, err)
	require.Len(t, locations.Located, 1)
	assert.Equal(t, "Globex", locations.Located[0].Name)
	assert.Equal(t, int64(2), locations.Located[0].Count)
	require.Len(t, locations.Missing, 1)
	assert.Equal(t, "Acme", locations.Missing[0].Name)
}

func TestScoreResume_PropagatesBackendFailure(t *testing.T) {
	backend := &fakeBackend{err: apperr.BackendUnavailable("score resume", assert.AnError)}
	uc, _, _ := newFixture(t, backend)

	_, err := uc.ScoreResume(context.Background(), "user-a", []byte("resume"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindBackendUnavailable, apperr.KindOf(err))
}

func TestCoverLetterDocument_WrapsLetter(t *testing.T) {
	backend := &fakeBackend{letter: "Dear hiring manager,\n\nI would like to apply."}
	uc, _, _ := newFixture(t, backend)

	content, err := uc.CoverLetterDocument(context.Background(), "job-1", []byte("resume"))
	require.NoError(t, err)
	// DOCX files are zip archives.
	require.GreaterOrEqual(t, len(content), 2)
	assert.Equal(t, "PK", string(content[:2]))
}

func TestExportJobs_UnknownFormat(t *testing.T) {
	uc, _, _ := newFixture(t, &fakeBackend{})

	_, _, _, err := uc.ExportJobs("user-a", "pdf")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestExportJobs_CSV(t *testing.T) {
	uc, db, scoper := newFixture(t, &fakeBackend{})
	seedUserListing(t, db, scoper.Key("user-a"), "job-1", "Backend Engineer", "Acme")

	filename, contentType, content, err := uc.ExportJobs("user-a", "csv")
	require.NoError(t, err)
	assert.Equal(t, "job_listings.csv", filename)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(content), "Backend Engineer")
	assert.Contains(t, string(content), "Acme")
}

func TestProfile_DefaultsBeforeFirstSave(t *testing.T) {
	uc, _, _ := newFixture(t, &fakeBackend{})

	profile, err := uc.Profile("user-a")
	require.NoError(t, err)
	assert.Equal(t, "user-a", profile.DisplayName)
}

func TestUpdateProfile_RoundTrip(t *testing.T) {
	uc, _, _ := newFixture(t, &fakeBackend{})

	updated, err := uc.UpdateProfile("user-a", "Brandon")
	require.NoError(t, err)
	assert.Equal(t, "Brandon", updated.DisplayName)

	profile, err := uc.Profile("user-a")
	require.NoError(t, err)
	assert.Equal(t, "Brandon", profile.DisplayName)
}

func TestUpdateProfile_EmptyName(t *testing.T) {
	uc, _, _ := newFixture(t, &fakeBackend{})

	_, err := uc.UpdateProfile("user-a", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
