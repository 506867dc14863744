// Package models содержит доменные структуры фитнес-клуба: планы абонементов,
// пользователей, входные данные операций и события подписки.
package models

// Plan план абонемента (тариф).
//
// Title и Description уникальны среди всех планов, это обеспечивает база данных.
// Подписчики плана не хранятся в структуре: их возвращает запрос по внешнему ключу.
type Plan struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	MonthlyPrice float64 `json:"monthlyPrice"`
}

// CreatePlanInput данные для создания плана.
type CreatePlanInput struct {
	Title        string  `json:"title" validate:"required,min=2,max=50"`
	Description  string  `json:"description" validate:"required,min=2,max=300"`
	MonthlyPrice float64 `json:"monthlyPrice" validate:"required,gt=0"`
}

// UpdatePlanInput данные для изменения плана. Перезаписываются все три поля.
type UpdatePlanInput struct {
	Title        string  `json:"title" validate:"required,min=2,max=50"`
	Description  string  `json:"description" validate:"required,min=2,max=300"`
	MonthlyPrice float64 `json:"monthlyPrice" validate:"required,gt=0"`
}
