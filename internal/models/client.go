package models

// Client представляет модель клиента.
type Client struct {
	ID           string `json:"id"`
	CompanyName  string `json:"companyName"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

// ClientRequest представляет структуру запроса для создания или обновления клиента.
type ClientRequest struct {
	CompanyName  string `json:"companyName" validate:"required"`
	ContactName  string `json:"contactName" validate:"required"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string `json:"contactPhone"`
}
