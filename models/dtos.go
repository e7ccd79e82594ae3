package models

import "time"

// MemberRequest is the body of POST /api/members and PUT /api/members/{id}.
// Pointer fields distinguish an omitted value from a zero value.
type MemberRequest struct {
	MemberName        string `json:"memberName" validate:"notblank"`
	MemberAddress     string `json:"memberAddress" validate:"notblank"`
	MemberEmail       string `json:"memberEmail" validate:"required,email"`
	MemberPhoneNumber string `json:"memberPhoneNumber" validate:"notblank"`
	StartDate         *Date  `json:"startDate" validate:"required"`
	DurationMonths    *int   `json:"durationMonths" validate:"required,min=0"`
}

// MemberResponse is the API representation of a member
type MemberResponse struct {
	ID                int64     `json:"id"`
	MemberName        string    `json:"memberName"`
	MemberAddress     string    `json:"memberAddress"`
	MemberEmail       string    `json:"memberEmail"`
	MemberPhoneNumber string    `json:"memberPhoneNumber"`
	StartDate         Date      `json:"startDate"`
	DurationMonths    int       `json:"durationMonths"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// TournamentRequest is the body of POST /api/tournaments and PUT /api/tournaments/{id}
type TournamentRequest struct {
	StartDate       *Date  `json:"startDate" validate:"required"`
	EndDate         *Date  `json:"endDate" validate:"required"`
	Location        string `json:"location" validate:"notblank"`
	EntryFee        *Money `json:"entryFee" validate:"required"`
	CashPrizeAmount *Money `json:"cashPrizeAmount" validate:"required"`
}

// TournamentResponse is the API representation of a tournament
type TournamentResponse struct {
	ID              int64     `json:"id"`
	StartDate       Date      `json:"startDate"`
	EndDate         Date      `json:"endDate"`
	Location        string    `json:"location"`
	EntryFee        Money     `json:"entryFee"`
	CashPrizeAmount Money     `json:"cashPrizeAmount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TournamentWithMembersResponse is a tournament together with its full participant list
type TournamentWithMembersResponse struct {
	TournamentResponse
	ParticipatingMembers []MemberResponse `json:"participatingMembers"`
}

// NewTournamentWithMembersResponse assembles the response; members are expected in roster order
func NewTournamentWithMembersResponse(t *Tournament, members []Member) *TournamentWithMembersResponse {
	resp := &TournamentWithMembersResponse{
		TournamentResponse:   t.ToResponse(),
		ParticipatingMembers: make([]MemberResponse, 0, len(members)),
	}
	for i := range members {
		resp.ParticipatingMembers = append(resp.ParticipatingMembers, members[i].ToResponse())
	}
	return resp
}
