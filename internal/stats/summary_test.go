package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bikeshare/internal/trip"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(trip.TimeLayout, s)
	require.NoError(t, err)
	return ts
}

func newTrip(t *testing.T, start, end, from, to string) trip.Trip {
	t.Helper()
	st := mustTime(t, start)
	return trip.Trip{
		StartTime:    st,
		EndTime:      mustTime(t, end),
		StartStation: from,
		EndStation:   to,
		UserType:     "Subscriber",
		Month:        int(st.Month()),
		DayOfWeek:    st.Weekday().String(),
	}
}

func TestTimeStats(t *testing.T) {
	table := &trip.Table{Trips: []trip.Trip{
		newTrip(t, "2017-01-01 08:00:00", "2017-01-01 08:10:00", "A", "B"),
		newTrip(t, "2017-01-08 08:30:00", "2017-01-08 08:40:00", "A", "B"),
		newTrip(t, "2017-02-07 17:00:00", "2017-02-07 17:10:00", "B", "A"),
	}}

	s, ok := TimeStats(table)
	require.True(t, ok)
	assert.Equal(t, TimeSummary{Month: 1, Day: "Sunday", Hour: 8}, s)
}

func TestStationStats(t *testing.T) {
	table := &trip.Table{Trips: []trip.Trip{
		newTrip(t, "2017-01-01 08:00:00", "2017-01-01 08:10:00", "Canal St", "Clark St"),
		newTrip(t, "2017-01-01 09:00:00", "2017-01-01 09:10:00", "Canal St", "State St"),
		newTrip(t, "2017-01-01 10:00:00", "2017-01-01 10:10:00", "Canal St", "State St"),
		newTrip(t, "2017-01-01 11:00:00", "2017-01-01 11:10:00", "Clark St", "State St"),
	}}

	s, ok := StationStats(table)
	require.True(t, ok)
	assert.Equal(t, "Canal St", s.Start)
	assert.Equal(t, "State St", s.End)
	assert.Equal(t, "Canal St to State St", s.Trip)
}

func TestDurationStats_SingleTrip(t *testing.T) {
	table := &trip.Table{Trips: []trip.Trip{
		newTrip(t, "2017-01-01 00:00:00", "2017-01-01 00:30:00", "A", "B"),
	}}

	s, ok := DurationStats(table)
	require.True(t, ok)
	assert.Equal(t, 30, s.TotalMinutes)
	assert.Equal(t, 30.0, s.MeanMinutes)
}

func TestDurationStats_TruncatesTotalAndRoundsMean(t *testing.T) {
	table := &trip.Table{Trips: []trip.Trip{
		newTrip(t, "2017-01-01 00:00:00", "2017-01-01 00:10:20", "A", "B"),
		newTrip(t, "2017-01-01 00:00:00", "2017-01-01 00:05:00", "A", "B"),
		newTrip(t, "2017-01-01 00:00:00", "2017-01-01 00:01:00", "A", "B"),
	}}

	// 10.333.. + 5 + 1 = 16.333.. minutes.
	s, ok := DurationStats(table)
	require.True(t, ok)
	assert.Equal(t, 16, s.TotalMinutes)
	assert.Equal(t, 5.44, s.MeanMinutes)
}

func TestStats_EmptyTable(t *testing.T) {
	empty := &trip.Table{}

	_, ok := TimeStats(empty)
	assert.False(t, ok)
	_, ok = StationStats(empty)
	assert.False(t, ok)
	_, ok = DurationStats(empty)
	assert.False(t, ok)
}

const demographicsCSV = `Start Time,End Time,Start Station,End Station,User Type,Gender,Birth Year
2017-01-01 08:00:00,2017-01-01 08:30:00,A,B,Subscriber,Male,1992.0
2017-01-01 08:00:00,2017-01-01 08:30:00,A,B,Subscriber,Female,1985.0
2017-01-01 08:00:00,2017-01-01 08:30:00,A,B,Customer,,
2017-01-01 08:00:00,2017-01-01 08:30:00,A,B,Subscriber,Male,1992.0
2017-01-01 08:00:00,2017-01-01 08:30:00,A,B,,Male,1961.0
`

func TestUserStats_WithDemographics(t *testing.T) {
	table, err := trip.Read(strings.NewReader(demographicsCSV))
	require.NoError(t, err)

	s, err := UserStats(table, true)
	require.NoError(t, err)

	assert.Equal(t, []Count[string]{{"Subscriber", 3}, {"Customer", 1}}, s.UserTypes)
	assert.Equal(t, []Count[string]{{"Male", 3}, {"Female", 1}}, s.Genders)
	assert.True(t, s.HasBirthYears)
	assert.Equal(t, 1992, s.LatestBirthYear)
	assert.Equal(t, 1961, s.EarliestBirthYear)
	assert.Equal(t, 1992, s.CommonBirthYear)
}

func TestUserStats_WithoutDemographicsIgnoresColumns(t *testing.T) {
	// No Gender or Birth Year columns at all: must not be an error.
	table := &trip.Table{Trips: []trip.Trip{
		newTrip(t, "2017-01-01 08:00:00", "2017-01-01 08:30:00", "A", "B"),
	}}

	s, err := UserStats(table, false)
	require.NoError(t, err)
	assert.Equal(t, []Count[string]{{"Subscriber", 1}}, s.UserTypes)
	assert.Nil(t, s.Genders)
	assert.False(t, s.HasBirthYears)
}

func TestUserStats_MissingBirthYearColumn(t *testing.T) {
	table := &trip.Table{HasGender: true}

	_, err := UserStats(table, true)
	require.ErrorIs(t, err, ErrMissingColumn)
	require.Contains(t, err.Error(), "Birth Year")
}

func TestUserStats_MissingGenderColumn(t *testing.T) {
	table := &trip.Table{HasBirthYear: true}

	_, err := UserStats(table, true)
	require.ErrorIs(t, err, ErrMissingColumn)
	require.Contains(t, err.Error(), "Gender")
}

func TestUserStats_BlankBirthYears(t *testing.T) {
	table := &trip.Table{HasGender: true, HasBirthYear: true, Trips: []trip.Trip{
		newTrip(t, "2017-01-01 08:00:00", "2017-01-01 08:30:00", "A", "B"),
	}}

	s, err := UserStats(table, true)
	require.NoError(t, err)
	assert.False(t, s.HasBirthYears)
}
