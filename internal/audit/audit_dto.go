package audit

type QueryRequest struct {
	Entity   string `form:"entity"`
	EntityID string `form:"entity_id"`
	Actor    string `form:"actor"`
	Action   string `form:"action"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

type EntryResponse struct {
	ID         string        `json:"id"`
	Actor      string        `json:"actor"`
	Action     string        `json:"action"`
	Entity     string        `json:"entity"`
	EntityID   string        `json:"entity_id"`
	Before     Snapshot      `json:"before,omitempty"`
	After      Snapshot      `json:"after,omitempty"`
	Changes    []FieldChange `json:"changes"`
	Detail     string        `json:"detail,omitempty"`
	OccurredAt string        `json:"occurred_at"`
}
