package settings

import (
	"strconv"

	"github.com/eliezerb2/presence/internal/audit"
)

func (s Settings) Snapshot() audit.Snapshot {
	return audit.Snapshot{
		"lateness_threshold_default":     strconv.Itoa(s.LatenessThresholdDefault),
		"yom_lo_ba_li_threshold_default": strconv.Itoa(s.YomLoBaLiThresholdDefault),
		"manager_name":                   s.ManagerName,
		"manager_phone":                  s.ManagerPhone,
		"court_chair_name":               s.CourtChairName,
		"court_chair_phone":              s.CourtChairPhone,
	}
}

func (o StudentMonthlyOverride) Snapshot() audit.Snapshot {
	return audit.Snapshot{
		"student_id":             o.StudentID.String(),
		"year_month":             o.YearMonth,
		"lateness_threshold":     optionalInt(o.LatenessThreshold),
		"yom_lo_ba_li_threshold": optionalInt(o.YomLoBaLiThreshold),
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
