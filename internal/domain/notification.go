package domain

type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserNotificationData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordNotificationData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailNotificationData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type EscalaRegeneratedNotificationData struct {
	FullName string `json:"fullName"`
	From     string `json:"from"`
	To       string `json:"to"`
}

type TaskAssignedNotificationData struct {
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	DueDate  string `json:"dueDate"`
}
