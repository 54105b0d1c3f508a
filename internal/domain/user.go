// Package domain contains the core entities of the signup service.
package domain

import "time"

// Phone is a phone number owned by exactly one user. It has no identity
// or lifecycle of its own: phones are created together with their owner
// and removed together with it.
type Phone struct {
	Number      string `json:"number"`
	CityCode    string `json:"citycode"`
	CountryCode string `json:"countrycode"`
}

// User is the aggregate root of the registration transaction. Phones are
// stored inline on the user, so ownership never needs back-pointers.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Phones    []Phone   `json:"phones"`
	Created   time.Time `json:"created"`
	Modified  time.Time `json:"modified"`
	LastLogin time.Time `json:"last_login"`
	Token     string    `json:"token"`
	IsActive  bool      `json:"is_active"`
}
