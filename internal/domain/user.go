package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProducer Role = "producer"
)

type User struct {
	ID        string
	Role      Role
	CompanyID string
	FCMToken  string
}

func (u *User) HasDeviceToken() bool {
	return u.FCMToken != ""
}

// DeviceTokens collects the non-empty tokens of users, keeping their order.
func DeviceTokens(users []User) []string {
	tokens := make([]string, 0, len(users))
	for _, u := range users {
		if u.HasDeviceToken() {
			tokens = append(tokens, u.FCMToken)
		}
	}
	return tokens
}
