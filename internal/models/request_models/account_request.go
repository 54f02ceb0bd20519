package request_models

import "encoding/json"

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type QuizRecordRequest struct {
	Email   string          `json:"email" binding:"required,email"`
	Answers json.RawMessage `json:"answers"`
}
