package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayRange(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, 3, 15, 23, 30, 0, 0, loc)
	endOf := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	}

	tests := []struct {
		name      string
		from, to  string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   string
	}{
		{"both bounds", "2024-01-01", "2024-01-31", time.Date(2024, 1, 1, 0, 0, 0, 0, loc), endOf(2024, 1, 31), ""},
		{"defaults", "", "", time.Date(2024, 2, 15, 0, 0, 0, 0, loc), endOf(2024, 3, 15), ""},
		{"only to", "", "2024-01-30", time.Date(2024, 1, 1, 0, 0, 0, 0, loc), endOf(2024, 1, 30), ""},
		{"single day", "2024-02-29", "2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, loc), endOf(2024, 2, 29), ""},
		{"bad from", "2024/01/01", "", time.Time{}, time.Time{}, "invalid 'from'"},
		{"bad to", "", "tomorrow", time.Time{}, time.Time{}, "invalid 'to'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDayRange(tt.from, tt.to, now)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(got.Start), "start %s", got.Start)
			assert.True(t, tt.wantEnd.Equal(got.End), "end %s", got.End)
		})
	}
}

func TestReportScope_Require(t *testing.T) {
	day := DateRange{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}

	assert.True(t, errors.Is(ReportScope{}.Validate(), ErrInvalidScope))
	assert.True(t, errors.Is(ReportScope{OrganizationID: "o"}.RequireRange(), ErrInvalidScope))
	assert.True(t, errors.Is(ReportScope{OrganizationID: "o"}.WithRange(day).RequireClient(), ErrInvalidScope))
	assert.NoError(t, ReportScope{OrganizationID: "o", ClientID: "c"}.WithRange(day).RequireClient())

	inverted := DateRange{Start: day.End, End: day.Start}
	assert.True(t, errors.Is(ReportScope{OrganizationID: "o"}.WithRange(inverted).Validate(), ErrInvalidScope))
}
