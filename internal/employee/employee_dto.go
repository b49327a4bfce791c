package employee

type CreateEmployeeRequest struct {
	EmployeeNo    string `json:"employee_no" binding:"required"`
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Department    string `json:"department" binding:"required"`
	Position      string `json:"position" binding:"required"`
	SalaryGradeID string `json:"salary_grade_id" binding:"required,uuid"`
	DateHired     string `json:"date_hired"`
	BankName      string `json:"bank_name"`
	BankAccount   string `json:"bank_account"`
}

type UpdateEmployeeRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Department    string `json:"department" binding:"required"`
	Position      string `json:"position" binding:"required"`
	SalaryGradeID string `json:"salary_grade_id" binding:"required,uuid"`
	BankName      string `json:"bank_name"`
	BankAccount   string `json:"bank_account"`
	Active        *bool  `json:"active"`
}

type EmployeeResponse struct {
	ID          string  `json:"id"`
	EmployeeNo  string  `json:"employee_no"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Department  string  `json:"department"`
	Position    string  `json:"position"`
	SalaryGrade string  `json:"salary_grade"`
	BasePay     string  `json:"base_pay"`
	DateHired   *string `json:"date_hired,omitempty"`
	BankName    string  `json:"bank_name,omitempty"`
	BankAccount string  `json:"bank_account,omitempty"`
	Active      bool    `json:"active"`
}

type CreateSalaryGradeRequest struct {
	Code    string `json:"code" binding:"required"`
	Step    int    `json:"step" binding:"required,min=1"`
	BasePay string `json:"base_pay" binding:"required"`
}

type SalaryGradeResponse struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Step    int    `json:"step"`
	BasePay string `json:"base_pay"`
}
