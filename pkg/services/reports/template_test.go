package reports

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplate(t *testing.T) {
	tpl := DefaultTemplate()

	assert.Equal(t, "protectedComputers", tpl.ReportType)
	assert.Equal(t, "Protected Computers", tpl.NamePrefix)
	assert.Equal(t, "08:00", tpl.DailyTime)
	assert.Equal(t, "07:00", tpl.MonthlyTime)
	assert.Equal(t, "Romance Standard Time", tpl.TimeZoneID)
	assert.Equal(t, "%Company Owner%", tpl.EmailOptions)
}

func TestLoadTemplate_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
daily_time: "06:30"
time_zone_id: "W. Europe Standard Time"
`), 0o600))

	tpl, err := LoadTemplate(path)
	require.NoError(t, err)

	assert.Equal(t, "06:30", tpl.DailyTime)
	assert.Equal(t, "W. Europe Standard Time", tpl.TimeZoneID)
	// Untouched keys keep their defaults.
	assert.Equal(t, "protectedComputers", tpl.ReportType)
	assert.Equal(t, "07:00", tpl.MonthlyTime)
}

func TestLoadTemplate_MissingFile(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTemplateSchedule(t *testing.T) {
	sched := DefaultTemplate().schedule()

	assert.Equal(t, "daily", sched.Type)
	assert.Equal(t, "everyDay", sched.Daily.Kind)
	assert.Equal(t, []string{
		"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	}, sched.Daily.Days)
	assert.Equal(t, "first", sched.Monthly.Week)
	assert.Equal(t, 1, sched.Monthly.DayNumber)
	assert.Len(t, sched.Monthly.Months, 12)
}
