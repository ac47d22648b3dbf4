package models

// Applicant statuses.
const (
	ApplicantStatusPending  = "pending"
	ApplicantStatusAccepted = "accepted"
	ApplicantStatusRejected = "rejected"
)

// ApplicantModel is an admissions lead. Names are unique under
// case-insensitive comparison; the rule lives in the service layer rather
// than a column constraint so the rejection message can stay user-facing.
type ApplicantModel struct {
	Base
	Name               string `json:"name"        gorm:"index;not null"`
	PhoneNumber        string `json:"phoneNumber" gorm:"not null"`
	Email              string `json:"email"`
	GradeApplying      string `json:"gradeApplying"`
	GuardianName       string `json:"guardianName"`
	GuardianPhone      string `json:"guardianPhone"`
	ParentOccupation   string `json:"parentOccupation"`
	HasSiblingEnrolled bool   `json:"hasSiblingEnrolled"`
	SiblingName        string `json:"siblingName"`
	ReferralSource     string `json:"referralSource"`
	Status             string `json:"status" gorm:"default:'pending';index"`
}

func (ApplicantModel) TableName() string { return "applicants" }

// ValidApplicantStatus reports whether s is one of the known statuses.
func ValidApplicantStatus(s string) bool {
	switch s {
	case ApplicantStatusPending, ApplicantStatusAccepted, ApplicantStatusRejected:
		return true
	}
	return false
}
