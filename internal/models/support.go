package models

type SupportTicket struct {
	Document

	UserID   string       `json:"user_id" firestore:"userId"`
	Subject  string       `json:"subject" firestore:"subject"`
	Body     string       `json:"body" firestore:"body"`
	Status   TicketStatus `json:"status" firestore:"status"`
	Priority string       `json:"priority,omitempty" firestore:"priority"`
}
