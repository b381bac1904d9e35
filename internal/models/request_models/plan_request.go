package request_models

type CreatePlanRequest struct {
	Name        string   `json:"name" binding:"required,max=120"`
	Description string   `json:"description"`
	PriceMinor  *int64   `json:"price_minor" binding:"required,min=0"`
	Currency    string   `json:"currency" binding:"omitempty,len=3"`
	Interval    string   `json:"interval" binding:"required,plan_interval"`
	Features    []string `json:"features" binding:"omitempty,dive,max=200"`
	ImageURL    string   `json:"image_url" binding:"omitempty,url"`
	IsActive    *bool    `json:"is_active"`
	IsPopular   bool     `json:"is_popular"`
}

type UpdatePlanRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=120"`
	Description *string   `json:"description"`
	PriceMinor  *int64    `json:"price_minor" binding:"omitempty,min=0"`
	Currency    *string   `json:"currency" binding:"omitempty,len=3"`
	Interval    *string   `json:"interval" binding:"omitempty,plan_interval"`
	Features    *[]string `json:"features"`
	ImageURL    *string   `json:"image_url" binding:"omitempty,url"`
	IsActive    *bool     `json:"is_active"`
	IsPopular   *bool     `json:"is_popular"`
}
