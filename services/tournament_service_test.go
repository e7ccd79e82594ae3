package services

import (
	"context"
	"testing"

	"github.com/MikeBarney88/golf-club-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tournamentRequest(t *testing.T, start, end, location string) *models.TournamentRequest {
	t.Helper()
	startDate := mustDate(t, start)
	endDate := mustDate(t, end)
	fee := models.MustMoney("100.00")
	prize := models.MustMoney("5000.00")
	return &models.TournamentRequest{
		StartDate:       &startDate,
		EndDate:         &endDate,
		Location:        location,
		EntryFee:        &fee,
		CashPrizeAmount: &prize,
	}
}

func tournamentLocations(tournaments []models.TournamentResponse) []string {
	out := make([]string, 0, len(tournaments))
	for _, tr := range tournaments {
		out = append(out, tr.Location)
	}
	return out
}

func TestTournamentService_CreateAndGet(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewTournamentService(db)
	ctx := context.Background()

	created, err := service.CreateTournament(ctx, tournamentRequest(t, "2024-06-01", "2024-06-03", "Pebble"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := service.GetTournamentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got.StartDate.String())
	assert.Equal(t, "2024-06-03", got.EndDate.String())
	assert.Equal(t, "Pebble", got.Location)
	assert.Equal(t, "100.00", got.EntryFee.String())
	assert.Equal(t, "5000.00", got.CashPrizeAmount.String())

	_, err = service.GetTournamentByID(ctx, created.ID+1)
	assert.True(t, IsNotFoundError(err))
}

func TestTournamentService_UpdateKeepsParticipants(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	members := NewMemberService(db)
	service := NewTournamentService(db)
	ctx := context.Background()

	ann, err := members.CreateMember(ctx, memberRequest(t, "Ann", "a@x.com", "2024-01-01"))
	require.NoError(t, err)
	created, err := service.CreateTournament(ctx, tournamentRequest(t, "2024-06-01", "2024-06-03", "Pebble"))
	require.NoError(t, err)
	_, err = service.AddMemberToTournament(ctx, created.ID, ann.ID)
	require.NoError(t, err)

	req := tournamentRequest(t, "2024-07-01", "2024-07-02", "Augusta")
	prize := models.MustMoney("7500.5")
	req.CashPrizeAmount = &prize
	updated, err := service.UpdateTournament(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.Location)
	assert.Equal(t, "7500.50", updated.CashPrizeAmount.String())

	withMembers, err := service.GetTournamentWithMembers(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", withMembers.Location)
	require.Len(t, withMembers.ParticipatingMembers, 1)

	_, err = service.UpdateTournament(ctx, 999, req)
	assert.True(t, IsNotFoundError(err))

	invalid := tournamentRequest(t, "2024-07-01", "2024-07-02", "")
	_, err = service.UpdateTournament(ctx, created.ID, invalid)
	assert.True(t, IsValidationError(err))
}

func TestTournamentService_Participation(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	members := NewMemberService(db)
	service := NewTournamentService(db)
	ctx := context.Background()

	ann, err := members.CreateMember(ctx, memberRequest(t, "Ann", "a@x.com", "2024-01-01"))
	require.NoError(t, err)
	bob, err := members.CreateMember(ctx, memberRequest(t, "Bob", "b@x.com", "2024-01-01"))
	require.NoError(t, err)
	pebble, err := service.CreateTournament(ctx, tournamentRequest(t, "2024-06-01", "2024-06-03", "Pebble"))
	require.NoError(t, err)
	augusta, err := service.CreateTournament(ctx, tournamentRequest(t, "2024-08-01", "2024-08-03", "Augusta"))
	require.NoError(t, err)

	resp, err := service.AddMemberToTournament(ctx, pebble.ID, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann"}, memberNames(resp.ParticipatingMembers))

	// a second add is idempotent
	resp, err = service.AddMemberToTournament(ctx, pebble.ID, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann"}, memberNames(resp.ParticipatingMembers))

	_, err = service.AddMemberToTournament(ctx, pebble.ID, bob.ID)
	require.NoError(t, err)
	_, err = service.AddMemberToTournament(ctx, augusta.ID, ann.ID)
	require.NoError(t, err)

	tournaments, err := members.GetMemberTournaments(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pebble", "Augusta"}, tournamentLocations(tournaments))

	participants, err := members.SearchByTournamentID(ctx, pebble.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bob"}, memberNames(participants))

	resp, err = service.RemoveMemberFromTournament(ctx, pebble.ID, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, memberNames(resp.ParticipatingMembers))

	// removing a non-participant changes nothing
	resp, err = service.RemoveMemberFromTournament(ctx, pebble.ID, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, memberNames(resp.ParticipatingMembers))

	tournaments, err = members.GetMemberTournaments(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Augusta"}, tournamentLocations(tournaments))

	assertRostersConsistent(t, service, members)
}

func TestTournamentService_ParticipationNotFound(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	members := NewMemberService(db)
	service := NewTournamentService(db)
	ctx := context.Background()

	ann, err := members.CreateMember(ctx, memberRequest(t, "Ann", "a@x.com", "2024-01-01"))
	require.NoError(t, err)
	pebble, err := service.CreateTournament(ctx, tournamentRequest(t, "2024-06-01", "2024-06-03", "Pebble"))
	require.NoError(t, err)

	_, err = service.AddMemberToTournament(ctx, pebble.ID+10, ann.ID)
	assert.ErrorContains(t, err, "tournament not found")

	_, err = service.AddMemberToTournament(ctx, pebble.ID, ann.ID+10)
	assert.ErrorContains(t, err, "member not found")

	_, err = service.RemoveMemberFromTournament(ctx, pebble.ID, ann.ID+10)
	assert.True(t, IsNotFoundError(err))

	_, err = service.GetTournamentWithMembers(ctx, pebble.ID+10)
	assert.True(t, IsNotFoundError(err))

	withMembers, err := service.GetTournamentWithMembers(ctx, pebble.ID)
	require.NoError(t, err)
	assert.NotNil(t, withMembers.ParticipatingMembers)
	assert.Empty(t, withMembers.ParticipatingMembers)
}

func TestDelete_CleansParticipation(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	members := NewMemberService(db)
	service := NewTournamentService(db)
	ctx := context.Background()

	ann, err := members.CreateMember(ctx, memberRequest(t, "Ann", "a@x.com", "2024-01-01"))
	require.NoError(t, err)
	bob, err := members.CreateMember(ctx, memberRequest(t, "Bob", "b@x.com", "2024-01-01"))
	require.NoError(t, err)
	pebble, err := service.CreateTournament(ctx, tournamentRequest(t, "2024-06-01", "2024-06-03", "Pebble"))
	require.NoError(t, err)
	augusta, err := service.CreateTournament(ctx, tournamentRequest(t, "2024-08-01", "2024-08-03", "Augusta"))
	require.NoError(t, err)

	for _, tid := range []int64{pebble.ID, augusta.ID} {
		for _, mid := range []int64{ann.ID, bob.ID} {
			_, err := service.AddMemberToTournament(ctx, tid, mid)
			require.NoError(t, err)
		}
	}

	require.NoError(t, members.DeleteMember(ctx, ann.ID))
	withMembers, err := service.GetTournamentWithMembers(ctx, pebble.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, memberNames(withMembers.ParticipatingMembers))

	require.NoError(t, service.DeleteTournament(ctx, augusta.ID))
	tournaments, err := members.GetMemberTournaments(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pebble"}, tournamentLocations(tournaments))

	_, err = members.GetMemberByID(ctx, bob.ID)
	assert.NoError(t, err, "deleting a tournament keeps its members")

	var rows int64
	require.NoError(t, db.Model(&models.TournamentMember{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	assert.True(t, IsNotFoundError(service.DeleteTournament(ctx, augusta.ID)))
	assertRostersConsistent(t, service, members)
}

func TestTournamentService_Searches(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewTournamentService(db)
	ctx := context.Background()

	for _, tr := range []struct{ start, end, location string }{
		{"2024-06-01", "2024-06-03", "Pebble Beach"},
		{"2024-07-01", "2024-07-03", "St Andrews"},
		{"2024-08-01", "2024-08-03", "Augusta"},
	} {
		_, err := service.CreateTournament(ctx, tournamentRequest(t, tr.start, tr.end, tr.location))
		require.NoError(t, err)
	}

	found, err := service.SearchByLocation(ctx, "BEACH")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pebble Beach"}, tournamentLocations(found))

	found, err = service.SearchByStartDate(ctx, mustDate(t, "2024-07-01"))
	require.NoError(t, err)
	assert.Equal(t, []string{"St Andrews"}, tournamentLocations(found))

	found, err = service.SearchByDateRange(ctx, mustDate(t, "2024-06-01"), mustDate(t, "2024-08-01"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Pebble Beach", "St Andrews", "Augusta"}, tournamentLocations(found))

	found, err = service.SearchStartedAfter(ctx, mustDate(t, "2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, []string{"St Andrews", "Augusta"}, tournamentLocations(found))

	found, err = service.SearchStartedBefore(ctx, mustDate(t, "2024-06-01"))
	require.NoError(t, err)
	assert.Empty(t, found)

	all, err := service.GetAllTournaments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// assertRostersConsistent checks that every roster agrees with every member's tournament list
func assertRostersConsistent(t *testing.T, tournaments *TournamentService, members *MemberService) {
	t.Helper()
	ctx := context.Background()

	all, err := tournaments.GetAllTournaments(ctx)
	require.NoError(t, err)
	rosters := make([]*models.Roster, 0, len(all))
	for _, tr := range all {
		withMembers, err := tournaments.GetTournamentWithMembers(ctx, tr.ID)
		require.NoError(t, err)
		roster := models.NewRoster(tr.ID)
		for _, m := range withMembers.ParticipatingMembers {
			roster.Add(m.ID)
		}
		rosters = append(rosters, roster)
	}

	everyone, err := members.GetAllMembers(ctx)
	require.NoError(t, err)
	index := make(map[int64][]int64, len(everyone))
	for _, m := range everyone {
		joined, err := members.GetMemberTournaments(ctx, m.ID)
		require.NoError(t, err)
		for _, tr := range joined {
			index[m.ID] = append(index[m.ID], tr.ID)
		}
	}

	assert.NoError(t, models.CheckConsistency(rosters, index))
}
