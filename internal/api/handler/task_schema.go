package handler

import "time"

type personRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type taskRequest struct {
	Header      string         `json:"header"      validate:"required"`
	Description string         `json:"description" validate:"required"`
	Status      string         `json:"status"      validate:"required,oneof=pending progress completed"`
	Priority    string         `json:"priority"    validate:"required,oneof=low middle high"`
	Performer   *personRequest `json:"performer"   validate:"required"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

type personResponse struct {
	Email string `json:"email"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type taskResponse struct {
	ID          string            `json:"id"`
	Header      string            `json:"header"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	Author      personResponse    `json:"author"`
	Performer   personResponse    `json:"performer"`
	Comments    []commentResponse `json:"comments,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type taskSliceResponse struct {
	Content []taskResponse `json:"content"`
	HasNext bool           `json:"has_next"`
}

type createdResponse struct {
	ID string `json:"id"`
}
