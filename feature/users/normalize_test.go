package users

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_JoinsAnswersByQuestion(t *testing.T) {
	answers := `{"setId":"onboarding-v2","answers":[
		{"questionId":"FAVORITE_DRIVER","values":["leclerc","hamilton"]},
		{"questionId":"FAVOURITE_CIRCUIT","values":["monza"]}
	]}`

	pref, err := Normalize("u-1", answers)

	require.NoError(t, err)
	assert.Equal(t, "u-1", pref.UserID)
	assert.Equal(t, "leclerc|hamilton", pref.FavDrivers)
	assert.Equal(t, "monza", pref.FavCircuits)
	// No car answer in the document degrades to an empty column.
	assert.Equal(t, "", pref.FavCars)
	assert.Equal(t, []string{"u-1", "leclerc|hamilton", "", "monza"}, pref.Row())
}

func TestNormalize_BlankIDSkips(t *testing.T) {
	_, err := Normalize("  ", `{"answers":[]}`)
	assert.ErrorIs(t, err, ErrSkipRecord)
}

func TestNormalize_UnreadableAnswersSkip(t *testing.T) {
	_, err := Normalize("u-1", `{"answers":`)
	assert.ErrorIs(t, err, ErrSkipRecord)
}

func TestNormalize_EmptyAnswersAllowed(t *testing.T) {
	pref, err := Normalize("u-1", "")

	require.NoError(t, err)
	assert.Equal(t, []string{"u-1", "", "", ""}, pref.Row())
}

func TestProperties_StreamingKeys(t *testing.T) {
	pref := UserPreference{
		UserID:      "u-1",
		FavDrivers:  "leclerc",
		FavCars:     "ferrari",
		FavCircuits: "monza|spa",
	}

	properties, err := pref.Properties()
	require.NoError(t, err)

	var doc map[string]string
	require.NoError(t, json.Unmarshal([]byte(properties), &doc))
	assert.Equal(t, map[string]string{
		"favDrivers":  "leclerc",
		"favCars":     "ferrari",
		"favCircuits": "monza|spa",
	}, doc)
}
