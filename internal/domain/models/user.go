package models

// User mirrors the backend user payload. Field names follow the wire format.
type User struct {
	ID             string `json:"_id"`
	FullName       string `json:"fullname"`
	Mobile         string `json:"mobile"`
	IsAdmin        bool   `json:"isAdmin"`
	CashbackAmount int64  `json:"CashbackAmount"`
}

// UserInput is the signup form. Mobile is sent composed as ISOCode+Mobile.
type UserInput struct {
	FullName string `json:"fullname"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	ISOCode  string `json:"isoCode"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type LoginInput struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	ISOCode  string `json:"isoCode"`
}

// ResetInput resets a password through the security question.
type ResetInput struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	ISOCode  string `json:"isoCode"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
