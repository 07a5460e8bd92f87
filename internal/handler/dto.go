package handler

type registerRequest struct {
	FullName    string  `json:"fullName" validate:"required,min=1,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitnil,datetime=2006-01-02"`
	PhotoURL    *string `json:"photoUrl"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileUpdateRequest struct {
	FullName    *string `json:"fullName" validate:"omitnil,min=1,max=100"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitnil,datetime=2006-01-02"`
	PhotoURL    *string `json:"photoUrl"`
}

type categoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Icon  string `json:"icon" validate:"required,min=1"`
	Color string `json:"color" validate:"required,min=1"`
}

type transactionRequest struct {
	Type       string  `json:"type" validate:"required,oneof=income expense"`
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	CategoryID string  `json:"categoryId" validate:"required,uuid"`
	Amount     float64 `json:"amount" validate:"gt=0"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	Note       *string `json:"note"`
}

type transactionUpdateRequest struct {
	Name       *string  `json:"name" validate:"omitnil,min=1,max=100"`
	CategoryID *string  `json:"categoryId" validate:"omitnil,uuid"`
	Amount     *float64 `json:"amount" validate:"omitnil,gt=0"`
	Date       *string  `json:"date" validate:"omitnil,datetime=2006-01-02"`
	Note       *string  `json:"note"`
}
