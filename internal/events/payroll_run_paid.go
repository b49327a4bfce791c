package events

import "time"

const PayrollRunPaidTopic = "payroll.run.paid.v1"

// PayrollRunPaidEvent is emitted exactly once per run, in the same
// transaction that marks the run PAID, via the outbox.
type PayrollRunPaidEvent struct {
	EventType   string    `json:"event_type"`
	RunID       string    `json:"run_id"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	TotalNetPay string    `json:"total_net_pay"`
	PaidBy      string    `json:"paid_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
