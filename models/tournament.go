package models

import "time"

// Tournament is a scheduled golf tournament
type Tournament struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StartDate       Date   `gorm:"column:start_date;type:date;not null;index" json:"startDate"`
	EndDate         Date   `gorm:"column:end_date;type:date;not null" json:"endDate"`
	Location        string `gorm:"column:location;not null" json:"location"`
	EntryFee        Money  `gorm:"column:entry_fee;type:decimal(12,2);not null" json:"entryFee"`
	CashPrizeAmount Money  `gorm:"column:cash_prize_amount;type:decimal(12,2);not null" json:"cashPrizeAmount"`
	Timestamps
}

// TableName sets the table name for the Tournament model
func (Tournament) TableName() string {
	return "tournaments"
}

// ApplyRequest overwrites every mutable field with the request values
func (t *Tournament) ApplyRequest(req *TournamentRequest) {
	t.StartDate = *req.StartDate
	t.EndDate = *req.EndDate
	t.Location = req.Location
	t.EntryFee = *req.EntryFee
	t.CashPrizeAmount = *req.CashPrizeAmount
}

// ToResponse converts the row into its API representation
func (t *Tournament) ToResponse() TournamentResponse {
	return TournamentResponse{
		ID:              t.ID,
		StartDate:       t.StartDate,
		EndDate:         t.EndDate,
		Location:        t.Location,
		EntryFee:        t.EntryFee,
		CashPrizeAmount: t.CashPrizeAmount,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// TournamentMember is one participation row of the tournament_members join table.
// The tournament side owns the relation; a member's tournaments are derived from these rows.
type TournamentMember struct {
	TournamentID int64     `gorm:"column:tournament_id;primaryKey;autoIncrement:false" json:"tournamentId"`
	MemberID     int64     `gorm:"column:member_id;primaryKey;autoIncrement:false;index" json:"memberId"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName sets the table name for the TournamentMember model
func (TournamentMember) TableName() string {
	return "tournament_members"
}
