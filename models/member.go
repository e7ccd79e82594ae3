package models

// Member is a golf club member profile
type Member struct {
	ID                int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MemberName        string `gorm:"column:member_name;not null" json:"memberName"`
	MemberAddress     string `gorm:"column:member_address;not null" json:"memberAddress"`
	MemberEmail       string `gorm:"column:member_email;not null;uniqueIndex:idx_members_member_email" json:"memberEmail"`
	MemberPhoneNumber string `gorm:"column:member_phone_number;not null;index" json:"memberPhoneNumber"`
	StartDate         Date   `gorm:"column:start_date;type:date;not null;index" json:"startDate"`
	DurationMonths    int    `gorm:"column:duration_months;not null" json:"durationMonths"`
	Timestamps
}

// TableName sets the table name for the Member model
func (Member) TableName() string {
	return "members"
}

// ApplyRequest overwrites every mutable field with the request values
func (m *Member) ApplyRequest(req *MemberRequest) {
	m.MemberName = req.MemberName
	m.MemberAddress = req.MemberAddress
	m.MemberEmail = req.MemberEmail
	m.MemberPhoneNumber = req.MemberPhoneNumber
	m.StartDate = *req.StartDate
	m.DurationMonths = *req.DurationMonths
}

// ToResponse converts the row into its API representation
func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		ID:                m.ID,
		MemberName:        m.MemberName,
		MemberAddress:     m.MemberAddress,
		MemberEmail:       m.MemberEmail,
		MemberPhoneNumber: m.MemberPhoneNumber,
		StartDate:         m.StartDate,
		DurationMonths:    m.DurationMonths,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
