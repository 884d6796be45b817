package models

// Requests for forecast HTTP endpoints. Defined in domain for consistency and reuse.

type ForecastRequest struct {
	Window  int `query:"window" json:"window" default:"3" validate:"gte=1,lte=1000"`
	Horizon int `query:"horizon" json:"horizon" default:"6" validate:"gte=0,lte=1000"`
	History int `query:"history" json:"history" default:"10" validate:"gte=0,lte=1000"`
}

type SeriesResponse struct {
	Source string  `json:"source"`
	Points []Point `json:"points"`
}
