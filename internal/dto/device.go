package dto

type DeviceRegistrationRequest struct {
	PushToken  string  `json:"fcmToken" validate:"required"`
	DeviceID   string  `json:"deviceId" validate:"required"`
	Platform   string  `json:"platform"`
	DeviceName *string `json:"deviceName,omitempty"`
}

type DeviceResponse struct {
	ID         string  `json:"id"`
	DeviceID   string  `json:"deviceId"`
	Platform   string  `json:"platform"`
	DeviceName *string `json:"deviceName,omitempty"`
	IsActive   bool    `json:"isActive"`
	CreatedAt  string  `json:"createdAt"`
	LastUsedAt *string `json:"lastUsedAt,omitempty"`
}
