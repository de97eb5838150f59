package timeline

import "time"

// ActivePeriods splits a person's life into the intervals during which
// they sat on the active list.
//
// Only history entries carrying both the active-list flag change and the
// exit date count as documented transitions. A person currently out of
// the active list with no documenting entry yields no periods at all:
// nothing counts as active under uncertainty.
func ActivePeriods(followedSince string, outOfActiveList bool, history []HistoryEntry) []Period {
	var changes []HistoryEntry
	for _, h := range history {
		if h.Data.OutOfActiveList != nil && h.Data.OutOfActiveListDate != nil {
			changes = append(changes, h)
		}
	}

	if len(changes) == 0 {
		if outOfActiveList {
			return nil
		}
		return []Period{{Start: followedSince}}
	}

	var periods []Period
	start := followedSince
	for _, h := range changes {
		if h.Data.OutOfActiveList.New {
			outDate := h.Data.OutOfActiveListDate.New
			if outDate == "" {
				continue
			}
			if start != "" {
				periods = append(periods, Period{Start: start, End: Canon(outDate)})
			}
			start = ""
		} else {
			// re-entered the active list
			start = h.Date
		}
	}

	if !outOfActiveList && start != "" {
		periods = append(periods, Period{Start: start})
	}
	return periods
}

// OutOfActivePeriods is the inverse view: the day-floored intervals
// during which the person was off the active list.
//
// The walk runs newest to oldest. An exit transition uses the backdated
// exit date when the entry carries one, otherwise the entry date. A
// person currently out contributes an open period closed off at the day
// after today (today is injected so results stay reproducible).
func OutOfActivePeriods(followedSince string, outOfActiveList bool, history []HistoryEntry, today string) []Period {
	var periods []Period

	if outOfActiveList {
		// start filled in by the matching exit transition below
		periods = append(periods, Period{End: Shift(DayFloor(today), 24*time.Hour)})
	}

	for i := len(history) - 1; i >= 0; i-- {
		h := history[i]
		ch := h.Data.OutOfActiveList
		if ch == nil {
			continue
		}

		ref := DayFloor(h.Date)
		if ch.New && h.Data.OutOfActiveListDate != nil && h.Data.OutOfActiveListDate.New != "" {
			ref = DayFloor(h.Data.OutOfActiveListDate.New)
		}

		switch {
		case !ch.Old && ch.New:
			// exit: start of the most recent unstarted out-period
			filled := false
			for j := range periods {
				if periods[j].Start == "" {
					periods[j].Start = ref
					filled = true
					break
				}
			}
			if !filled {
				// exit with no matching re-entry ahead of it, keep a
				// degenerate period rather than dropping the record
				periods = append([]Period{{Start: ref, End: ref}}, periods...)
			}
		case ch.Old && !ch.New:
			// re-entry closes the out-period further back in time
			periods = append([]Period{{End: ref}}, periods...)
		}
	}

	fallback := Epoch
	if followedSince != "" {
		fallback = DayFloor(followedSince)
	}
	for j := range periods {
		if periods[j].Start == "" {
			periods[j].Start = fallback
		}
	}

	sortPeriods(periods)
	return periods
}

// InOutOfActivePeriod reports whether iso falls inside any out-period
func InOutOfActivePeriod(iso string, periods []Period) bool {
	for _, p := range periods {
		if iso >= p.Start && iso < p.End {
			return true
		}
	}
	return false
}
