// internal/models/support.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type TicketReply struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	IsAdmin   bool      `json:"is_admin"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type TicketReplies []TicketReply

func (r TicketReplies) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	return string(b), err
}

func (r *TicketReplies) Scan(value interface{}) error {
	return scanJSON(value, r)
}

type Ticket struct {
	BaseModel
	UserID    string         `json:"user_id" gorm:"type:varchar(36);not null;index"`
	UserName  string         `json:"user_name" gorm:"size:255"`
	UserEmail string         `json:"user_email" gorm:"size:255"`
	Subject   string         `json:"subject" gorm:"size:255;not null"`
	Message   string         `json:"message" gorm:"type:text;not null"`
	Category  TicketCategory `json:"category" gorm:"type:varchar(20);not null"`
	OrderID   string         `json:"order_id,omitempty" gorm:"type:varchar(36)"`
	Status    TicketStatus   `json:"status" gorm:"type:varchar(20);not null;index"`
	Priority  TicketPriority `json:"priority" gorm:"type:varchar(20);not null"`
	Replies   TicketReplies  `json:"replies" gorm:"type:jsonb;not null"`
}

type Contact struct {
	BaseModel
	Name    string `json:"name" gorm:"size:255;not null"`
	Email   string `json:"email" gorm:"size:255;not null"`
	Phone   string `json:"phone,omitempty" gorm:"size:50"`
	Subject string `json:"subject,omitempty" gorm:"size:255"`
	Message string `json:"message" gorm:"type:text;not null"`
	Status  string `json:"status" gorm:"size:20;not null"`
}

// ChatMessage is one assistant exchange within a session.
type ChatMessage struct {
	BaseModel
	SessionID         string `json:"session_id" gorm:"size:64;not null;index"`
	UserID            string `json:"user_id,omitempty" gorm:"type:varchar(36)"`
	UserMessage       string `json:"user_message" gorm:"type:text;not null"`
	AssistantResponse string `json:"assistant_response" gorm:"type:text;not null"`
}
