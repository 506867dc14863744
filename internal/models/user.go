package models

// User клиент фитнес-клуба.
//
// ActivePlan равен nil, если пользователь не подписан ни на один план.
// PaidUntil задан только вместе с ActivePlan.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	ActivePlan   *Plan  `json:"activePlan"`
	PaidUntil    *Date  `json:"paidUntil"`
}

// CreateUserInput данные для регистрации пользователя.
type CreateUserInput struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=6,max=50"`
	Email    string `json:"email" validate:"required,min=3,max=100,email"`
}

// UpdateUserInput данные для изменения пользователя.
// Имя пользователя после создания не меняется.
type UpdateUserInput struct {
	Password string `json:"password" validate:"required,min=6,max=50"`
	Email    string `json:"email" validate:"required,min=3,max=100,email"`
}

// SubscribeInput данные для подписки пользователя на план.
type SubscribeInput struct {
	PlanID    int64 `json:"planId" validate:"required,gt=0"`
	PaidUntil *Date `json:"paidUntil" validate:"required"`
}
