package models

// ClientProfile представляет профиль заказчика.
type ClientProfile struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	CompanyName  string `json:"companyName"`
	Bio          string `json:"bio"`
	ContactEmail string `json:"contactEmail"`
}

// FreelancerProfile представляет профиль фрилансера.
type FreelancerProfile struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	Username     string  `json:"username,omitempty"`
	Portfolio    string  `json:"portfolio"`
	Skills       string  `json:"skills"`
	HourlyRate   float64 `json:"hourlyRate"`
	Availability bool    `json:"availability"`
}

// ClientProfileRequest - запрос на изменение профиля заказчика.
type ClientProfileRequest struct {
	CompanyName  string `json:"companyName" validate:"required,max=255"`
	Bio          string `json:"bio"`
	ContactEmail string `json:"contactEmail" validate:"required,email"`
}

// FreelancerProfileRequest - запрос на изменение профиля фрилансера.
type FreelancerProfileRequest struct {
	Portfolio    string  `json:"portfolio"`
	Skills       string  `json:"skills" validate:"max=255"`
	HourlyRate   float64 `json:"hourlyRate" validate:"gte=0,lt=10000"`
	Availability *bool   `json:"availability"`
}

// FreelancerFilter - фильтры списка фрилансеров.
type FreelancerFilter struct {
	Skills    string
	MinRate   *float64
	MaxRate   *float64
	Available *bool
	Limit     int
	Offset    int
}
