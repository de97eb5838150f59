package timeline

// BoolChange records a boolean field transition in a history entry
type BoolChange struct {
	Old bool `json:"old_value"`
	New bool `json:"new_value"`
}

// StringChange records a string field transition in a history entry
type StringChange struct {
	Old string `json:"old_value"`
	New string `json:"new_value"`
}

// OutOfTeamsInfo records one team exit noted in a history entry
type OutOfTeamsInfo struct {
	Team   string `json:"team"`
	Reason string `json:"reason,omitempty"`
}

// HistoryData is the typed payload of a history entry, narrowed to the
// fields the reconciler and the stats pipeline read
type HistoryData struct {
	OutOfActiveList     *BoolChange      `json:"out_of_active_list,omitempty"`
	OutOfActiveListDate *StringChange    `json:"out_of_active_list_date,omitempty"`
	OutOfTeams          []OutOfTeamsInfo `json:"out_of_teams,omitempty"`
}

// HistoryEntry is one field-change record in a person's history log
// Logs are ordered oldest to newest
type HistoryEntry struct {
	Date string      `json:"date"`
	Data HistoryData `json:"data"`
}
