package rpc

import "time"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message     string    `json:"message"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
	Admin       bool      `json:"admin"`
}

// RegisterRequest mirrors the registration payload. Numeric fields are
// pointers so that an omitted field can be told apart from zero.
type RegisterRequest struct {
	Username      string  `json:"username"`
	Password      string  `json:"password"`
	Name          string  `json:"name"`
	Domain        string  `json:"domain"`
	Quota         *int64  `json:"quota,omitempty"`
	IsAdmin       *int32  `json:"isadmin,omitempty"`
	IsGlobalAdmin *int32  `json:"isglobaladmin,omitempty"`
	Active        *int32  `json:"active,omitempty"`
	Language      *string `json:"language,omitempty"`
	MailboxFormat *string `json:"mailboxformat,omitempty"`
}

type RegisterResponse struct {
	Message string   `json:"message"`
	Mailbox *Mailbox `json:"mailbox"`
}

type GetMailboxRequest struct {
	Username string `json:"username"`
}

type GetMailboxResponse struct {
	Mailbox *Mailbox `json:"mailbox"`
}

type InspectRequest struct {
	Limit int `json:"limit,omitempty"`
}

type InspectResponse struct {
	Total   int64      `json:"total"`
	Columns []Column   `json:"columns"`
	Recent  []*Mailbox `json:"recent"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// Mailbox is the public view of a mailbox row. It never carries the
// password column.
type Mailbox struct {
	Username             string    `json:"username"`
	Name                 string    `json:"name"`
	Language             string    `json:"language"`
	StorageBaseDirectory string    `json:"storagebasedirectory"`
	StorageNode          string    `json:"storagenode"`
	Maildir              string    `json:"maildir"`
	Quota                int64     `json:"quota"`
	Domain               string    `json:"domain"`
	MailboxFormat        string    `json:"mailboxformat"`
	MailboxFolder        string    `json:"mailboxfolder"`
	IsAdmin              int32     `json:"isadmin"`
	IsGlobalAdmin        int32     `json:"isglobaladmin"`
	Active               int32     `json:"active"`
	Created              time.Time `json:"created"`
	Modified             time.Time `json:"modified"`
	Expired              time.Time `json:"expired"`
}

type Column struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}
