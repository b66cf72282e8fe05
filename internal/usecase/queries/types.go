package queries

import "time"

// Read models (DTO for read side)
type InventoryView struct {
	ProductID string    `json:"product_id"`
	Stock     int       `json:"stock"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductionOrderView struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Quantity      int       `json:"quantity"`
	ScheduledDate time.Time `json:"scheduled_date"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	Status        string    `json:"status"`
}

type ParticipantView struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

type EventParticipantsView struct {
	EventID      string            `json:"event_id"`
	Title        string            `json:"title"`
	Participants []ParticipantView `json:"participants"`
}
