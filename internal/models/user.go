package models

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	UID               string `firestore:"uid" json:"uid"`
	Email             string `firestore:"email" json:"email"`
	FullName          string `firestore:"fullName" json:"fullName"`
	Username          string `firestore:"username" json:"username"`
	Role              string `firestore:"role" json:"role"`
	Disabled          bool   `firestore:"disabled" json:"disabled"`
	ProfilePictureURL string `firestore:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
	AvailableTokens   int64  `firestore:"availableTokens" json:"availableTokens"`
}
