package models

import "time"

// Invite is a pending organization member invite. The invited user redeems it
// with an opaque token received by mail.
type Invite struct {
	UUID         string       `json:"uuid"`
	MemberEmail  string       `json:"memberEmail"`
	CreatedAt    time.Time    `json:"createdAt"`
	Organization Organization `json:"organization"`
}
