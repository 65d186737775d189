package dto

type SubmitFlagRequest struct {
	Report string `json:"report"`
}
