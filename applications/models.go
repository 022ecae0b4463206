// Package applications manages degree course applications. Applicants see and
// change only their own applications; administrators see and change all.
package applications

// Target period short names.
const (
	WinterSemester = "WiSe"
	SummerSemester = "SoSe"
)

// Application is one applicant's application to a degree course for a target
// period. (ApplicantUserID, DegreeCourseID, TargetPeriodYear,
// TargetPeriodShortName) is unique.
type Application struct {
	ID                    string `json:"id" example:"0d2c5e8e-1f0b-4cf7-8a55-1e9f2f7d4b11"`
	ApplicantUserID       string `json:"applicantUserID" example:"alice"`
	DegreeCourseID        string `json:"degreeCourseID" example:"2f1c7e0a-3b8e-4d43-9a4c-7f8ad1f5f7a1"`
	TargetPeriodYear      int    `json:"targetPeriodYear" example:"2026"`
	TargetPeriodShortName string `json:"targetPeriodShortName" example:"WiSe" enums:"WiSe,SoSe"`
}

// CreateApplicationRequest is the body of POST /api/degreeCourseApplications.
// ApplicantUserID defaults to the caller; only administrators may name someone else.
type CreateApplicationRequest struct {
	ApplicantUserID       string `json:"applicantUserID,omitempty"`
	DegreeCourseID        string `json:"degreeCourseID" validate:"required"`
	TargetPeriodYear      int    `json:"targetPeriodYear" validate:"required,gt=0"`
	TargetPeriodShortName string `json:"targetPeriodShortName" validate:"required,oneof=WiSe SoSe"`
}

// UpdateApplicationRequest is the body of PUT /api/degreeCourseApplications/{id}.
// Only administrators may move an application to another applicant or course.
type UpdateApplicationRequest struct {
	ApplicantUserID       *string `json:"applicantUserID,omitempty"`
	DegreeCourseID        *string `json:"degreeCourseID,omitempty"`
	TargetPeriodYear      *int    `json:"targetPeriodYear,omitempty" validate:"omitempty,gt=0"`
	TargetPeriodShortName *string `json:"targetPeriodShortName,omitempty" validate:"omitempty,oneof=WiSe SoSe"`
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	ApplicantUserID string
	DegreeCourseID  string
}

func (f Filter) matches(a *Application) bool {
	return (f.ApplicantUserID == "" || a.ApplicantUserID == f.ApplicantUserID) &&
		(f.DegreeCourseID == "" || a.DegreeCourseID == f.DegreeCourseID)
}
