package models

import (
	"fmt"
	"slices"
	"sort"
)

// Roster is the participant set of a single tournament, held as member identifiers.
// A member's tournaments are never stored on the member; they are derived from rosters.
type Roster struct {
	TournamentID int64
	memberIDs    map[int64]struct{}
}

// NewRoster builds a roster for the tournament from existing participation rows
func NewRoster(tournamentID int64, memberIDs ...int64) *Roster {
	r := &Roster{
		TournamentID: tournamentID,
		memberIDs:    make(map[int64]struct{}, len(memberIDs)),
	}
	for _, id := range memberIDs {
		r.memberIDs[id] = struct{}{}
	}
	return r
}

// RosterFromParticipations builds a roster from tournament_members rows, ignoring rows of other tournaments
func RosterFromParticipations(tournamentID int64, rows []TournamentMember) *Roster {
	r := NewRoster(tournamentID)
	for _, row := range rows {
		if row.TournamentID == tournamentID {
			r.memberIDs[row.MemberID] = struct{}{}
		}
	}
	return r
}

// Add registers the member. It returns false when the member was already present.
func (r *Roster) Add(memberID int64) bool {
	if r.Has(memberID) {
		return false
	}
	r.memberIDs[memberID] = struct{}{}
	return true
}

// Remove drops the member. It returns false when the member was not a participant.
func (r *Roster) Remove(memberID int64) bool {
	if !r.Has(memberID) {
		return false
	}
	delete(r.memberIDs, memberID)
	return true
}

// Has reports whether the member participates in the tournament
func (r *Roster) Has(memberID int64) bool {
	_, ok := r.memberIDs[memberID]
	return ok
}

// Len returns the number of participants
func (r *Roster) Len() int {
	return len(r.memberIDs)
}

// MemberIDs returns the participant ids in ascending order
func (r *Roster) MemberIDs() []int64 {
	ids := make([]int64, 0, len(r.memberIDs))
	for id := range r.memberIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// tournamentsOf returns, in ascending order, the ids of the tournaments whose roster contains the member
func tournamentsOf(rosters []*Roster, memberID int64) []int64 {
	ids := make([]int64, 0)
	for _, r := range rosters {
		if r.Has(memberID) {
			ids = append(ids, r.TournamentID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CheckConsistency verifies that the rosters and a member-to-tournaments index agree in both directions
func CheckConsistency(rosters []*Roster, memberTournaments map[int64][]int64) error {
	byTournament := make(map[int64]*Roster, len(rosters))
	for _, r := range rosters {
		byTournament[r.TournamentID] = r
	}

	for memberID, tournamentIDs := range memberTournaments {
		for _, tid := range tournamentIDs {
			r, ok := byTournament[tid]
			if !ok || !r.Has(memberID) {
				return fmt.Errorf("member %d lists tournament %d but is not on its roster", memberID, tid)
			}
		}
	}

	members := make(map[int64]struct{})
	for _, r := range rosters {
		for id := range r.memberIDs {
			members[id] = struct{}{}
		}
	}
	memberIDs := make([]int64, 0, len(members))
	for id := range members {
		memberIDs = append(memberIDs, id)
	}
	sort.Slice(memberIDs, func(i, j int) bool { return memberIDs[i] < memberIDs[j] })

	for _, memberID := range memberIDs {
		listed := memberTournaments[memberID]
		for _, tid := range tournamentsOf(rosters, memberID) {
			if !slices.Contains(listed, tid) {
				return fmt.Errorf("tournament %d lists member %d but the member does not list the tournament", tid, memberID)
			}
		}
	}
	return nil
}
