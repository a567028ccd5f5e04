package domain

import "time"

type Authority string

const (
	AuthorityAdmin Authority = "ADMIN"
	AuthorityUser  Authority = "USER"
)

func (a Authority) Valid() bool {
	return a == AuthorityAdmin || a == AuthorityUser
}

type User struct {
	Id        UserId
	Username  Username
	PassHash  string
	Authority Authority
	CreatedAt time.Time
}

func (u User) IsAdmin() bool {
	return u.Authority == AuthorityAdmin
}

// to iterate thru layers: handler -> service -> storage
type UserCreationData struct {
	Username  Username
	Password  Password
	Authority Authority
}
