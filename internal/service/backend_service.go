package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/brandon-wee/jobdash/internal/apperr"
	"github.com/brandon-wee/jobdash/internal/config"
	"github.com/brandon-wee/jobdash/internal/dto"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type BackendServiceInterface interface {
	ScoreResume(ctx context.Context, resume []byte, userKey string) ([]dto.AnalysisResult, error)
	GenerateCoverLetter(ctx context.Context, jobID string, resume []byte) (string, error)
	RecommendSkills(ctx context.Context, resume []byte, occupation string) (string, []dto.SkillResource, error)
}

// BackendService forwards resume bytes to the external analysis service.
// Every call is one synchronous request; no retry, no internal timeout.
// Cancellation and deadlines come from the caller's context.
type BackendService struct {
	client *resty.Client
}

func NewBackendService() *BackendService {
	return NewBackendServiceWithURL(config.LoadBackendConfig().URL)
}

func NewBackendServiceWithURL(baseURL string) *BackendService {
	return &BackendService{
		client: resty.New().SetBaseURL(baseURL),
	}
}

// ScoreResume posts the resume for similarity scoring against the user's
// tracked listings. Any non-success status comes back as an explicit error,
// never as a silently empty result.
func (s *BackendService) ScoreResume(ctx context.Context, resume []byte, userKey string) ([]dto.AnalysisResult, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"resume_contents": base64.StdEncoding.EncodeToString(resume),
			"user_id":         userKey,
		}).
		Post("/similarity")
	if err != nil {
		return nil, apperr.BackendUnavailable("score resume", err)
	}
	if !resp.IsSuccess() {
		return nil, apperr.BackendUnavailable("score resume", fmt.Errorf("backend returned %s", resp.Status()))
	}

	results := []dto.AnalysisResult{}
	for _, item := range gjson.Get(resp.String(), "result").Array() {
		results = append(results, dto.AnalysisResult{
			Position:         item.Get("position").String(),
			Company:          item.Get("company").String(),
			SimilarityScore:  item.Get("similarity_score").Float(),
			CompatibleSkills: item.Get("compatible_skills").String(),
			MissingSkills:    item.Get("missing_skills").String(),
		})
	}
	return results, nil
}

func (s *BackendService) GenerateCoverLetter(ctx context.Context, jobID string, resume []byte) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"job_id":          jobID,
			"resume_contents": base64.StdEncoding.EncodeToString(resume),
		}).
		Post("/cover_letter")
	if err != nil {
		return "", apperr.BackendUnavailable("generate cover letter", err)
	}
	if !resp.IsSuccess() {
		return "", apperr.BackendUnavailable("generate cover letter", fmt.Errorf("backend returned %s", resp.Status()))
	}

	letter := gjson.Get(resp.String(), "cover_letter").String()
	if letter == "" {
		return "", apperr.BackendUnavailable("generate cover letter", fmt.Errorf("empty cover letter in response"))
	}
	return letter, nil
}

func (s *BackendService) RecommendSkills(ctx context.Context, resume []byte, occupation string) (string, []dto.SkillResource, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"resume_contents": base64.StdEncoding.EncodeToString(resume),
			"job_occupation":  occupation,
		}).
		Post("/recommend_skills")
	if err != nil {
		return "", nil, apperr.BackendUnavailable("recommend skills", err)
	}
	if !resp.IsSuccess() {
		return "", nil, apperr.BackendUnavailable("recommend skills", fmt.Errorf("backend returned %s", resp.Status()))
	}

	body := resp.String()
	skills := gjson.Get(body, "skills").String()
	resources := []dto.SkillResource{}
	for _, item := range gjson.Get(body, "context").Array() {
		resources = append(resources, dto.SkillResource{
			Title: item.Get("title").String(),
			Link:  item.Get("link").String(),
		})
	}
	return skills, resources, nil
}
