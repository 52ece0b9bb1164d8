package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Question ids of the fixed onboarding answer set. The spelling mismatch on
// the first id is upstream's, not ours.
const (
	QuestionDrivers  = "FAVORITE_DRIVER"
	QuestionCars     = "FAVOURITE_CAR"
	QuestionCircuits = "FAVOURITE_CIRCUIT"
)

// CSV header of the user staging artifact.
var Header = []string{"USER_ID", "FAV_DRIVERS", "FAV_CARS", "FAV_CIRCUITS"}

// ErrSkipRecord marks a profile row that must be dropped instead of failing
// the run.
var ErrSkipRecord = errors.New("profile skipped")

// Answer is one answered onboarding question.
type Answer struct {
	QuestionID string   `json:"questionId"`
	Values     []string `json:"values"`
}

// AnswerDocument is the raw onboarding answer payload stored on a profile.
type AnswerDocument struct {
	Answers []Answer `json:"answers"`
	SetID   string   `json:"setId"`
}

// UserPreference is the normalized per-user preference shape.
type UserPreference struct {
	UserID      string
	FavDrivers  string
	FavCars     string
	FavCircuits string
}

// Row returns the preference in staging CSV column order.
func (u UserPreference) Row() []string {
	return []string{u.UserID, u.FavDrivers, u.FavCars, u.FavCircuits}
}

// Properties returns the streaming-write property document.
func (u UserPreference) Properties() (string, error) {
	out, err := json.Marshal(map[string]string{
		"favDrivers":  u.FavDrivers,
		"favCars":     u.FavCars,
		"favCircuits": u.FavCircuits,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode user properties: %w", err)
	}
	return string(out), nil
}

// Normalize folds one profile row into the preference shape. Answers are
// matched by question id; an absent question degrades to an empty value. A
// blank personalization id drops the row via ErrSkipRecord.
func Normalize(personalizationID, answersJSON string) (UserPreference, error) {
	if strings.TrimSpace(personalizationID) == "" {
		return UserPreference{}, fmt.Errorf("%w: blank personalization id", ErrSkipRecord)
	}

	var doc AnswerDocument
	if answersJSON != "" {
		if err := json.Unmarshal([]byte(answersJSON), &doc); err != nil {
			return UserPreference{}, fmt.Errorf("%w: unreadable answers for %s: %v",
				ErrSkipRecord, personalizationID, err)
		}
	}

	return UserPreference{
		UserID:      personalizationID,
		FavDrivers:  joinAnswer(doc.Answers, QuestionDrivers),
		FavCars:     joinAnswer(doc.Answers, QuestionCars),
		FavCircuits: joinAnswer(doc.Answers, QuestionCircuits),
	}, nil
}

func joinAnswer(answers []Answer, questionID string) string {
	for _, answer := range answers {
		if answer.QuestionID == questionID {
			return strings.Join(answer.Values, "|")
		}
	}
	return ""
}
