package cli

import (
	"testing"

	"github.com/annafors/planera/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlackout(t *testing.T) {
	b, err := parseBlackout("2025-10-13:2025-10-19:fall break")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-13", b.Start.Format(domain.DateLayout))
	assert.Equal(t, "2025-10-19", b.End.Format(domain.DateLayout))
	assert.Equal(t, "fall break", b.Label)

	b, err = parseBlackout("2025-10-13:2025-10-19")
	require.NoError(t, err)
	assert.Empty(t, b.Label)

	_, err = parseBlackout("2025-10-13")
	assert.Error(t, err)
}

func TestParseAnchor(t *testing.T) {
	a, err := parseAnchor("2025-09-23:special_event:Anniversary:Town hall")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "2025-09-23", a.Date.Format(domain.DateLayout))
	assert.Equal(t, domain.AnchorSpecialEvent, a.Type)
	assert.Equal(t, "Anniversary", a.Theme)
	assert.Equal(t, "Town hall", a.Location)
}

func TestParseAnchor_DateAndTypeOnly(t *testing.T) {
	a, err := parseAnchor("2025-12-23:no_meeting")
	require.NoError(t, err)
	assert.Equal(t, domain.AnchorNoMeeting, a.Type)
	assert.Empty(t, a.Theme)
	assert.Empty(t, a.Location)
}

func TestParseAnchor_Rejects(t *testing.T) {
	_, err := parseAnchor("2025-09-23")
	assert.Error(t, err)

	_, err = parseAnchor("2025-09-23:birthday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anchor type")

	_, err = parseAnchor("23/09/2025:camp")
	assert.Error(t, err)
}
