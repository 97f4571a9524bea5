package holiday

type CreateHolidayRequest struct {
	HolidayDate string `json:"holiday_date" binding:"required"`
	Name        string `json:"name" binding:"required"`
	HolidayType string `json:"holiday_type" binding:"omitempty,oneof=NATIONAL REGIONAL COMPANY"`
}

type UpdateHolidayRequest struct {
	Name        *string `json:"name"`
	HolidayType *string `json:"holiday_type" binding:"omitempty,oneof=NATIONAL REGIONAL COMPANY"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	HolidayDate string `json:"holiday_date"`
	Name        string `json:"name"`
	HolidayType string `json:"holiday_type"`
	Year        int    `json:"year"`
}
