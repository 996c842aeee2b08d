package registration

// Entry is one billable and displayable unit produced by GroupTeams:
// either a complete team of two mirrored registrations or a single
// solo registration.
type Entry struct {
	EventTypeID    string
	Members        []Registration // one for solo entries, two for teams
	GenderDivision string         // set for team entries only
}

// IsTeam reports whether the entry covers a complete two-member team.
func (e Entry) IsTeam() bool {
	return len(e.Members) == 2
}

// GroupTeams collapses mirrored team registrations into single team
// entries. A registration whose named partner has no matching row for
// the same event type is degraded to a solo entry rather than dropped
// or rejected; rows without a partner are solo entries as well.
// PRE: registrations are validated rows, order is irrelevant
// POST: Every input row appears in exactly one entry
func GroupTeams(registrations []Registration) []Entry {
	// Partner rows are located by (athlete, event type); mirrored rows
	// are unique on that pair by construction.
	byAthleteEvent := make(map[string]int, len(registrations))
	for i, r := range registrations {
		byAthleteEvent[r.AthleteID+"|"+r.EventTypeID] = i
	}

	visited := make(map[string]bool, len(registrations))
	seenTeams := make(map[string]bool)
	var entries []Entry

	for _, r := range registrations {
		if visited[r.ID] {
			continue
		}
		visited[r.ID] = true

		if !r.HasPartner() {
			entries = append(entries, Entry{EventTypeID: r.EventTypeID, Members: []Registration{r}})
			continue
		}

		key := r.Identity()
		if seenTeams[key] {
			continue
		}

		partnerIdx, ok := byAthleteEvent[r.TeamPartnerID+"|"+r.EventTypeID]
		if !ok || registrations[partnerIdx].TeamPartnerID != r.AthleteID {
			// Partner withdrew, was never registered, or points at a
			// different partner: keep the row as a solo entry.
			// Data-quality issue, not an error.
			entries = append(entries, Entry{EventTypeID: r.EventTypeID, Members: []Registration{r}})
			continue
		}

		partner := registrations[partnerIdx]
		visited[partner.ID] = true
		seenTeams[key] = true
		entries = append(entries, Entry{
			EventTypeID:    r.EventTypeID,
			Members:        []Registration{r, partner},
			GenderDivision: r.GenderDivision,
		})
	}
	return entries
}
