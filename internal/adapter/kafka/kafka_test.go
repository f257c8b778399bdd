package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mars-weather-etl/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	processed := time.Date(2018, 3, 1, 6, 0, 0, 0, time.UTC)
	obs := domain.Observation{
		Date:           time.Date(2018, 2, 27, 0, 0, 0, 0, time.UTC),
		Year:           2018,
		DayKey:         "2018-02-27",
		MinTemp:        -77,
		MaxTemp:        -10,
		Pressure:       733,
		SolarLongitude: 135.2,
		Season:         domain.SeasonSummer,
		Opacity:        "Sunny",
		ProcessedAt:    processed,
	}

	msg, err := serializeToMessage(obs)
	require.NoError(t, err)

	assert.Equal(t, []byte("2018-02-27"), msg.Key)
	assert.Contains(t, string(msg.Value), `"season":"Summer"`)
	assert.Contains(t, string(msg.Value), `"min_temp":-77`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "season", msg.Headers[0].Key)
	assert.Equal(t, []byte("Summer"), msg.Headers[0].Value)
	assert.Equal(t, "processed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(processed.Format(time.RFC3339)), msg.Headers[1].Value)
}
