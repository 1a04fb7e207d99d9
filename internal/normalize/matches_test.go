package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	t.Parallel()

	body := []byte(`[{
		"key":"2026casj_qm12","comp_level":"qm","set_number":1,"match_number":12,
		"winning_alliance":"red","event_key":"2026casj",
		"time":1773523200,"actual_time":1773524100,"predicted_time":1773523800,"post_result_time":0,
		"alliances":{
			"red":{"score":87,"team_keys":["frc254","frc1678","frc973"],"surrogate_team_keys":["frc973"],"dq_team_keys":[]},
			"blue":{"score":85,"team_keys":["frc118","frc148","frc2056"],"surrogate_team_keys":[],"dq_team_keys":["frc148"]}
		},
		"score_breakdown":{"red":{"autoPoints":30},"blue":{"autoPoints":25}}
	}]`)

	matches, alliances, allianceTeams, err := Matches(body, "2026casj")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Len(t, alliances, 2)
	require.Len(t, allianceTeams, 6)

	m := matches[0]
	require.Equal(t, "2026casj_qm12", m.Key)
	require.Equal(t, "qm", m.CompLevel)
	require.Equal(t, 12, m.MatchNumber)
	require.Equal(t, "red", m.WinningAlliance)
	require.Equal(t, "2026casj", m.EventKey)
	require.NotNil(t, m.Time)
	require.Equal(t, time.Unix(1773523200, 0).UTC(), *m.Time)
	require.Nil(t, m.PostResultTime, "zero timestamp should map to nil")

	require.Equal(t, "red", alliances[0].AllianceColor)
	require.Equal(t, 87, alliances[0].Score)
	require.Equal(t, []string{"frc254", "frc1678", "frc973"}, alliances[0].TeamKeys)
	require.NotNil(t, alliances[0].ScoreBreakdown)
	require.JSONEq(t, `{"autoPoints":30}`, *alliances[0].ScoreBreakdown)
	require.Equal(t, "blue", alliances[1].AllianceColor)
	require.JSONEq(t, `{"autoPoints":25}`, *alliances[1].ScoreBreakdown)

	red := allianceTeams[:3]
	require.Equal(t, "frc254", red[0].TeamKey)
	require.Equal(t, 1, red[0].Position)
	require.False(t, red[0].IsSurrogate)
	require.Equal(t, "frc973", red[2].TeamKey)
	require.Equal(t, 3, red[2].Position)
	require.True(t, red[2].IsSurrogate)
	require.False(t, red[2].IsDQ)

	blue := allianceTeams[3:]
	require.Equal(t, "blue", blue[0].AllianceColor)
	require.True(t, blue[1].IsDQ)
	require.False(t, blue[1].IsSurrogate)
}

func TestMatches_UnscoredMatch(t *testing.T) {
	t.Parallel()

	body := []byte(`[{
		"key":"2026casj_sf2m3","comp_level":"sf","set_number":2,"match_number":3,
		"winning_alliance":"","event_key":"2026casj",
		"alliances":{
			"red":{"score":-1,"team_keys":["frc254","frc1678","frc973"]},
			"blue":{"score":-1,"team_keys":["frc118","frc148","frc2056"]}
		},
		"score_breakdown":null
	}]`)

	matches, alliances, _, err := Matches(body, "2026casj")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Empty(t, matches[0].WinningAlliance)
	require.Nil(t, matches[0].Time)
	require.Equal(t, -1, alliances[0].Score)
	require.Nil(t, alliances[0].ScoreBreakdown)
}

func TestMatches_RejectsMalformedKey(t *testing.T) {
	t.Parallel()

	body := []byte(`[{
		"key":"2026casj-qm12","comp_level":"qm","set_number":1,"match_number":12,
		"event_key":"2026casj","alliances":{}
	}]`)
	_, _, _, err := Matches(body, "2026casj")
	require.Error(t, err)
}

func TestUnixTime(t *testing.T) {
	t.Parallel()

	require.Nil(t, unixTime(nil))
	zero := int64(0)
	require.Nil(t, unixTime(&zero))
	sec := int64(1773523200)
	got := unixTime(&sec)
	require.NotNil(t, got)
	require.Equal(t, time.Unix(sec, 0).UTC(), *got)
}
