package handler

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/brandon-wee/jobdash/internal/apperr"
	"github.com/brandon-wee/jobdash/internal/dto"
	"github.com/brandon-wee/jobdash/internal/middleware"
	"github.com/brandon-wee/jobdash/internal/usecase"
	"github.com/brandon-wee/jobdash/internal/util"
	"github.com/gofiber/fiber/v2"
)

// maxResumeSize caps uploaded resume files at 5MB.
const maxResumeSize = 5 * 1024 * 1024

type DashboardHandler struct {
	uc *usecase.DashboardUsecase
}

func NewDashboardHandler(uc *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/jobs", h.ListJobs)
	app.Get("/jobs/export", h.ExportJobs)
	app.Delete("/jobs/:job_id", h.DeleteJob)
	app.Get("/locations", h.ListLocations)
	app.Post("/resume/score", middleware.RateLimiter(1, 4*time.Second), h.ScoreResume)
	app.Post("/cover-letter", middleware.RateLimiter(1, 4*time.Second), h.CoverLetter)
	app.Post("/cover-letter/download", middleware.RateLimiter(1, 4*time.Second), h.CoverLetterDownload)
	app.Post("/skills", middleware.RateLimiter(1, 4*time.Second), h.RecommendSkills)
	app.Get("/profile", h.Profile)
	app.Put("/profile", h.UpdateProfile)
}

func (h *DashboardHandler) ListJobs(c *fiber.Ctx) error {
	userID, err := h.requireUser(c)
	if err != nil {
		return h.reject(c, err)
	}
	rows, err := h.uc.ListJobs(userID)
	if err != nil {
		return h.fail(c, "failed to load job listings", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job listings",
		Data:    rows,
		Meta:    fiber.Map{"captions": dto.TableCaptions},
	})
}

func (h *DashboardHandler) DeleteJob(c *fiber.Ctx) error {
	userID, err := h.requireUser(c)
	if err != nil {
		return h.reject(c, err)
	}
	rows, err := h.uc.DeleteJob(userID, c.Params("job_id"))
	if err != nil {
		return h.fail(c, "failed to delete job listing", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete job listing",
		Data:    rows,
	})
}

func (h *DashboardHandler) ListLocations(c *fiber.Ctx) error {
	userID, err := h.requireUser(c)
	if err != nil {
		return h.reject(c, err)
	}
	locations, err := h.uc.ListLocations(userID)
	if err != nil {
		return h.fail(c, "failed to load job locations", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job locations",
		Data:    locations,
	})
}

func (h *DashboardHandler) ExportJobs(c *fiber.Ctx) error {
	userID, err := h.requireUser(c)
	if err != nil {
		return h.reject(c, err)
	}
	format := c.Query("format", "csv")
	filename, contentType, content, err := h.uc.ExportJobs(userID, format)
	if err != nil {
		return h.fail(c, "failed to export job listings", err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(content)
}

func (h *DashboardHandler) ScoreResume(c *fiber.Ctx) error {
	userID, err := h.requireUser(c)
	if err != nil {
		return h.reject(c, err)
	}
	resume, err := h.readResume(c)
	if err != nil {
		return h.reject(c, err)
	}
	results, err := h.uc.ScoreResume(c.Context(), userID, resume)
	if err != nil {
		return h.fail(c, "resume analysis is unavailable", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success score resume",
		Data:    results,
	})
}

func (h *DashboardHandler) CoverLetter(c *fiber.Ctx) error {
	if _, err := h.requireUser(c); err != nil {
		return h.reject(c, err)
	}
	jobID := c.FormValue("job_id")
	if jobID == "" {
		return h.reject(c, apperr.Validation("job_id is required"))
	}
	resume, err := h.readResume(c)
	if err != nil {
		return h.reject(c, err)
	}
	letter, err := h.uc.GenerateCoverLetter(c.Context(), jobID, resume)
	if err != nil {
		return h.fail(c, "cover letter generation is unavailable", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success generate cover letter",
		Data:    fiber.Map{"cover_letter": letter},
	})
}

func (h *DashboardHandler) CoverLetterDownload(c *fiber.Ctx) error {
	if _, err := h.requireUser(c); err != nil {
		return h.reject(c, err)
	}
	jobID := c.FormValue("job_id")
	if jobID == "" {
		return h.reject(c, apperr.Validation("job_id is required"))
	}
	resume, err := h.readResume(c)
	if err != nil {
		return h.reject(c, err)
	}
	content, err := h.uc.CoverLetterDocument(c.Context(), jobID, resume)
	if err != nil {
		return h.fail(c, "cover letter generation is unavailable", err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cover_letter.docx"`)
	return c.Send(content)
}

func (h *DashboardHandler) RecommendSkills(c *fiber.Ctx) error {
	if _, err := h.requireUser(c); err != nil {
		return h.reject(c, err)
	}
	occupation := c.FormValue("job_occupation")
	if occupation == "" {
		return h.reject(c, apperr.Validation("job_occupation is required"))
	}
	resume, err := h.readResume(c)
	if err != nil {
		return h.reject(c, err)
	}
	skills, resources, err := h.uc.RecommendSkills(c.Context(), resume, occupation)
	if err != nil {
		return h.fail(c, "skills recommendation is unavailable", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success recommend skills",
		Data:    fiber.Map{"skills": skills, "context": resources},
	})
}

func (h *DashboardHandler) Profile(c *fiber.Ctx) error {
	userID, err := h.requireUser(c)
	if err != nil {
		return h.reject(c, err)
	}
	profile, err := h.uc.Profile(userID)
	if err != nil {
		return h.fail(c, "failed to load profile", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profile",
		Data:    profile,
	})
}

func (h *DashboardHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := h.requireUser(c)
	if err != nil {
		return h.reject(c, err)
	}
	var body dto.Profile
	if err := c.BodyParser(&body); err != nil {
		return h.reject(c, apperr.Validation("invalid request body"))
	}
	profile, err := h.uc.UpdateProfile(userID, body.DisplayName)
	if err != nil {
		return h.fail(c, "failed to update profile", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update profile",
		Data:    profile,
	})
}

// requireUser pulls the external user id off the request. Without it the user
// is not logged in; the returned error is the caller's signal to stop before
// any data access happens.
func (h *DashboardHandler) requireUser(c *fiber.Ctx) (string, error) {
	userID := c.Query("user_id")
	if userID == "" {
		userID = c.FormValue("user_id")
	}
	if userID == "" {
		return "", apperr.Unauthorized("no user id provided, please launch the dashboard from the browser extension")
	}
	return userID, nil
}

// readResume validates and reads the uploaded resume. It only returns errors,
// never writes the response, so callers can reliably short-circuit.
func (h *DashboardHandler) readResume(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("resume")
	if err != nil {
		return nil, apperr.Validation("resume file is required")
	}
	if file.Size > maxResumeSize {
		return nil, apperr.Validation("resume file size is too large (max 5MB)")
	}

	f, err := file.Open()
	if err != nil {
		return nil, apperr.Internal("cannot read resume file", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, apperr.Internal("cannot read resume file", err)
	}
	return content, nil
}

// reject writes the error envelope for guard failures, using the application
// error's own message.
func (h *DashboardHandler) reject(c *fiber.Ctx, err error) error {
	message := "request failed"
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    util.StatusForError(err),
		Message: message,
	}, err)
}

// fail maps application errors onto the response envelope with the right
// status code, keeping failures visible instead of rendering empty state.
func (h *DashboardHandler) fail(c *fiber.Ctx, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    util.StatusForError(err),
		Message: message,
	}, err)
}
