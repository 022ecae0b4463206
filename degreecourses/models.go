// Package degreecourses is the degree course catalog: public reads and
// administrator-only writes.
package degreecourses

// DegreeCourse is one course of study offered by a university department.
// (Name, UniversityName) is unique.
type DegreeCourse struct {
	ID                  string `json:"id" example:"2f1c7e0a-3b8e-4d43-9a4c-7f8ad1f5f7a1"`
	Name                string `json:"name" example:"Medieninformatik"`
	ShortName           string `json:"shortName" example:"MI"`
	UniversityName      string `json:"universityName" example:"Berliner Hochschule für Technik"`
	UniversityShortName string `json:"universityShortName" example:"BHT"`
	DepartmentName      string `json:"departmentName" example:"Informatik und Medien"`
	DepartmentShortName string `json:"departmentShortName" example:"FB VI"`
}

// CreateDegreeCourseRequest is the body of POST /api/degreeCourses.
type CreateDegreeCourseRequest struct {
	Name                string `json:"name" validate:"required,max=256"`
	ShortName           string `json:"shortName" validate:"required,max=64"`
	UniversityName      string `json:"universityName" validate:"required,max=256"`
	UniversityShortName string `json:"universityShortName" validate:"required,max=64"`
	DepartmentName      string `json:"departmentName" validate:"required,max=256"`
	DepartmentShortName string `json:"departmentShortName" validate:"required,max=64"`
}

// UpdateDegreeCourseRequest is the body of PUT /api/degreeCourses/{id}.
// Absent fields keep their value; present fields must not be empty.
type UpdateDegreeCourseRequest struct {
	ID                  *string `json:"id,omitempty"`
	Name                *string `json:"name,omitempty" validate:"omitempty,max=256"`
	ShortName           *string `json:"shortName,omitempty" validate:"omitempty,max=64"`
	UniversityName      *string `json:"universityName,omitempty" validate:"omitempty,max=256"`
	UniversityShortName *string `json:"universityShortName,omitempty" validate:"omitempty,max=64"`
	DepartmentName      *string `json:"departmentName,omitempty" validate:"omitempty,max=256"`
	DepartmentShortName *string `json:"departmentShortName,omitempty" validate:"omitempty,max=64"`
}

// apply copies the present fields onto c and reports the first empty one.
func (req UpdateDegreeCourseRequest) apply(c *DegreeCourse) (emptyField string) {
	fields := []struct {
		name string
		src  *string
		dst  *string
	}{
		{"name", req.Name, &c.Name},
		{"shortName", req.ShortName, &c.ShortName},
		{"universityName", req.UniversityName, &c.UniversityName},
		{"universityShortName", req.UniversityShortName, &c.UniversityShortName},
		{"departmentName", req.DepartmentName, &c.DepartmentName},
		{"departmentShortName", req.DepartmentShortName, &c.DepartmentShortName},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		if *f.src == "" {
			return f.name
		}
		*f.dst = *f.src
	}
	return ""
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	UniversityShortName string
}
