package automation

// SweepResult reports one RunDailySweep pass.
type SweepResult struct {
	Date             string         `json:"date"`
	At               string         `json:"at"`
	SchoolDay        bool           `json:"school_day"`
	PermanentAbsence int            `json:"permanent_absence"`
	Seeded           int            `json:"seeded"`
	Reminded         int            `json:"reminded"`
	Transitions      map[string]int `json:"transitions"`
	Failed           int            `json:"failed"`
}

// Mutations counts every record this pass wrote.
func (r SweepResult) Mutations() int {
	n := r.PermanentAbsence + r.Seeded
	for _, c := range r.Transitions {
		n += c
	}
	return n
}
