// Package models defines the user profile table read by the preference
// import.
package models

// OnboardingKind marks profile rows carrying onboarding answers.
const OnboardingKind = "onboarding"

// UserProfile is one stored profile row. Answers holds the raw onboarding
// answer document as JSON.
type UserProfile struct {
	PersonalizationID string `gorm:"column:personalization_id;primaryKey;size:64"`
	ProfileID         string `gorm:"column:profile_id;size:128"`
	Kind              string `gorm:"column:kind;size:32;index"`
	Answers           string `gorm:"column:answers;type:text"`
	AnswersDate       string `gorm:"column:answers_date;size:40"`
}

// TableName maps the profile onto its table.
func (UserProfile) TableName() string {
	return "user_profiles"
}
