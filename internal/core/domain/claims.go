package domain

import "time"

// Claims is the identity payload carried by a session token. Role is copied
// at issuance and trusted as-is on every request; a role change in the store
// takes effect only on the subject's next login.
type Claims struct {
	SubjectID string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
