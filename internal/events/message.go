package events

import (
	"encoding/json"
	"time"

	"expenseapi/internal/model"
)

// TypeExpenseCreated identifies messages announcing a newly stored expense.
const TypeExpenseCreated = "expense.created"

// ExpenseCreatedMessage is the body published after an expense is stored.
type ExpenseCreatedMessage struct {
	Type      string        `json:"type"`
	Expense   model.Expense `json:"expense"`
	Timestamp time.Time     `json:"timestamp"`
}

func newExpenseCreatedMessage(e model.Expense, at time.Time) ExpenseCreatedMessage {
	return ExpenseCreatedMessage{Type: TypeExpenseCreated, Expense: e, Timestamp: at.UTC()}
}

func (m ExpenseCreatedMessage) encode() ([]byte, error) {
	return json.Marshal(m)
}
