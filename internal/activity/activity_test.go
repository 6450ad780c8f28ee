package activity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportCSV = `time,activityType,lapNumber,distance,speed,calories,lat,long,elevation,heartRate,cycles
0,4,1,0.0,1.0,0,59.33,18.06,12.5,120,80
1,4,1,1.0,2.0,0,59.33,18.06,12.5,121,81
2,4,1,3.0,1.8,1,59.33,18.06,12.6,,82
3,4,1,5.2,2.2,1,,,12.6,124,
4,-1,,,,,,,,,
`

func TestParseCSVReader(t *testing.T) {
	records, err := ParseCSVReader(strings.NewReader(exportCSV))
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, 0, records[0].TimeSeconds)
	assert.Equal(t, 4, records[0].ActivityType)
	require.NotNil(t, records[0].Speed)
	assert.Equal(t, 1.0, *records[0].Speed)
	require.NotNil(t, records[3].Distance)
	assert.Equal(t, 5.2, *records[3].Distance)

	// Blank optional fields stay nil.
	assert.Nil(t, records[2].HeartRate)
	assert.Nil(t, records[3].Lat)
	assert.Nil(t, records[4].Distance)
	assert.Equal(t, SentinelActivityType, records[4].ActivityType)
}

func TestParseCSVReaderColumnOrderFree(t *testing.T) {
	csv := "speed,time,activityType,distance\n2.5,10,4,100.0\n"
	records, err := ParseCSVReader(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 10, records[0].TimeSeconds)
	assert.Equal(t, 2.5, *records[0].Speed)
	assert.Equal(t, 100.0, *records[0].Distance)
}

func TestParseCSVReaderMissingRequiredColumn(t *testing.T) {
	_, err := ParseCSVReader(strings.NewReader("time,distance,speed\n0,0.0,1.0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "activityType")
}

func TestParseCSVReaderMalformedNumeric(t *testing.T) {
	// A present-but-unparseable field is an error, not a silent nil:
	// otherwise a malformed distance would later read as a missing one.
	_, err := ParseCSVReader(strings.NewReader("time,activityType,distance,speed\n0,4,abc,1.0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid distance "abc"`)
	assert.Contains(t, err.Error(), "row 2")

	// Fields the analysis ignores still fail loudly.
	_, err = ParseCSVReader(strings.NewReader("time,activityType,distance,speed,calories\n0,4,1.0,1.0,many\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid calories "many"`)
}

func TestParseCSVReaderBadTime(t *testing.T) {
	_, err := ParseCSVReader(strings.NewReader("time,activityType\nabc,4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestTrimSentinel(t *testing.T) {
	records, err := ParseCSVReader(strings.NewReader(exportCSV))
	require.NoError(t, err)

	trimmed := TrimSentinel(records)
	assert.Len(t, trimmed, 4)

	// Idempotent when there is no sentinel.
	assert.Len(t, TrimSentinel(trimmed), 4)
	assert.Empty(t, TrimSentinel(nil))
}

func TestBuildSamples(t *testing.T) {
	records, err := ParseCSVReader(strings.NewReader(exportCSV))
	require.NoError(t, err)

	samples, err := BuildSamples(TrimSentinel(records))
	require.NoError(t, err)
	require.Len(t, samples, 4)

	assert.Equal(t, 3, samples[3].TimeSeconds)
	assert.Equal(t, 5.2, samples[3].Distance)
	assert.InDelta(t, 2.2, samples[3].Speed.Ms(), 1e-9)
}

func TestBuildSamplesRejectsBadInput(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		records []RawRecord
		wantErr string
	}{
		{"empty", nil, "no samples"},
		{
			"missing distance",
			[]RawRecord{{TimeSeconds: 0, Speed: f(1.0)}},
			"missing distance",
		},
		{
			"missing speed",
			[]RawRecord{{TimeSeconds: 0, Distance: f(0.0)}},
			"missing speed",
		},
		{
			"negative speed",
			[]RawRecord{{TimeSeconds: 0, Distance: f(0.0), Speed: f(-1.0)}},
			"invalid speed",
		},
		{
			"time not increasing",
			[]RawRecord{
				{TimeSeconds: 5, Distance: f(0.0), Speed: f(1.0)},
				{TimeSeconds: 5, Distance: f(1.0), Speed: f(1.0)},
			},
			"not after",
		},
		{
			"distance decreasing",
			[]RawRecord{
				{TimeSeconds: 0, Distance: f(10.0), Speed: f(1.0)},
				{TimeSeconds: 1, Distance: f(9.0), Speed: f(1.0)},
			},
			"decreased",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSamples(tt.records)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
