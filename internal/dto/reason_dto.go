package dto

import "github.com/google/uuid"

type CreateReasonRequest struct {
	InitialName string   `json:"initial_name"`
	ReasonText  string   `json:"reason_text"`
	Location    string   `json:"location,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type CreateReasonResponse struct {
	ID uuid.UUID `json:"id"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
