package model

// User: пользователь бэкенда.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender,omitempty"` // только для отображения
	CreatedAt Timestamp `json:"created_at"`
}

// UserInput is the body of POST /users/ and PUT /users/{id}.
type UserInput struct {
	Username string  `json:"username" validate:"required,min=3,username"`
	Email    string  `json:"email" validate:"required,simple_email"`
	Gender   *string `json:"gender,omitempty"`
}
