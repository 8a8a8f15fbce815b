package reports

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/de-tools/vspc-reporter/pkg/models/api"
)

// Template holds the knobs of the report template that differ between
// installs. Everything else in the payload is fixed.
type Template struct {
	ReportType   string `mapstructure:"report_type"`
	NamePrefix   string `mapstructure:"name_prefix"`
	DailyTime    string `mapstructure:"daily_time"`
	MonthlyTime  string `mapstructure:"monthly_time"`
	TimeZoneID   string `mapstructure:"time_zone_id"`
	EmailOptions string `mapstructure:"email_options"`
}

// DefaultTemplate matches the schedule the console ships reports with:
// daily at 08:00 every day, monthly fallback first Sunday 07:00.
func DefaultTemplate() Template {
	return Template{
		ReportType:   "protectedComputers",
		NamePrefix:   "Protected Computers",
		DailyTime:    "08:00",
		MonthlyTime:  "07:00",
		TimeZoneID:   "Romance Standard Time",
		EmailOptions: "%Company Owner%",
	}
}

// LoadTemplate reads a template override file. Keys not present in the
// file keep their defaults.
func LoadTemplate(path string) (Template, error) {
	v := viper.New()
	v.SetConfigFile(path)

	def := DefaultTemplate()
	v.SetDefault("report_type", def.ReportType)
	v.SetDefault("name_prefix", def.NamePrefix)
	v.SetDefault("daily_time", def.DailyTime)
	v.SetDefault("monthly_time", def.MonthlyTime)
	v.SetDefault("time_zone_id", def.TimeZoneID)
	v.SetDefault("email_options", def.EmailOptions)

	if err := v.ReadInConfig(); err != nil {
		return Template{}, fmt.Errorf("failed to read template file: %w", err)
	}

	var tpl Template
	if err := v.Unmarshal(&tpl); err != nil {
		return Template{}, fmt.Errorf("failed to parse template file: %w", err)
	}
	return tpl, nil
}

func (t Template) schedule() api.ReportSchedule {
	return api.ReportSchedule{
		Type: "daily",
		Daily: api.DailySchedule{
			Time: t.DailyTime,
			Kind: "everyDay",
			Days: []string{
				"sunday", "monday", "tuesday", "wednesday",
				"thursday", "friday", "saturday",
			},
		},
		Monthly: api.MonthlySchedule{
			Time:      t.MonthlyTime,
			Week:      "first",
			Day:       "sunday",
			DayNumber: 1,
			Months: []string{
				"january", "february", "march", "april", "may", "june",
				"july", "august", "september", "october", "november", "december",
			},
		},
		TimeZoneID: t.TimeZoneID,
	}
}
