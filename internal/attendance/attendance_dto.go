package attendance

type UpsertLogRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required"`
	TimeIn     *string `json:"time_in"`
	TimeOut    *string `json:"time_out"`
	Remarks    string  `json:"remarks"`
}

type LogResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	TimeIn     *string `json:"time_in,omitempty"`
	TimeOut    *string `json:"time_out,omitempty"`
	Remarks    string  `json:"remarks,omitempty"`
}

type SummaryResponse struct {
	EmployeeID    string `json:"employee_id"`
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	DaysWorked    int    `json:"days_worked"`
	OvertimeHours string `json:"overtime_hours"`
}
