package domain

// Employee is both the write payload for the add-employee endpoint and the
// read projection shown in the directory. Phone is expected in E.164 form;
// the dashboard only checks presence, the backend validates the format.
type Employee struct {
	ID           string `json:"id,omitempty"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	HireDate     string `json:"hire_date"`
	ManagerName  string `json:"manager_name,omitempty"`
	SiteLocation string `json:"site_location,omitempty"`
	Department   string `json:"department"`
}

// EmployeePage is one page of the employee directory.
type EmployeePage struct {
	Employees []Employee `json:"employees"`
	Total     int        `json:"total"`
}
