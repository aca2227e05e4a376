package dto

// AnalysisResult is one row of the backend's resume similarity response.
// It is never persisted, only rendered.
type AnalysisResult struct {
	Position         string  `json:"position"`
	Company          string  `json:"company"`
	SimilarityScore  float64 `json:"similarity_score"`
	CompatibleSkills string  `json:"compatible_skills"`
	MissingSkills    string  `json:"missing_skills"`
}

// SkillResource is a reference link returned alongside the recommended skills.
type SkillResource struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}
