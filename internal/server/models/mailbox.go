// Package models defines server-side data models persisted in the vmail database.
package models

import "time"

// Mailbox is a row of the vmail mailbox table.
//
// Password always holds an encoded credential ({SSHA512}...), never the
// plaintext. Flag columns are stored as 0/1 integers, as iRedMail does.
type Mailbox struct {
	Username             string
	Password             string
	Name                 string
	Language             string
	StorageBaseDirectory string
	StorageNode          string
	Maildir              string
	Quota                int64
	Domain               string
	MailboxFormat        string
	MailboxFolder        string
	IsAdmin              int32
	IsGlobalAdmin        int32
	Active               int32
	Created              time.Time
	Modified             time.Time
	Expired              time.Time
}

// Admin reports whether the mailbox carries domain or global admin rights.
func (m *Mailbox) Admin() bool {
	return m.IsAdmin == 1 || m.IsGlobalAdmin == 1
}

// IsActive reports whether the account may log in.
func (m *Mailbox) IsActive() bool {
	return m.Active == 1
}

// Column describes one column of the mailbox table.
type Column struct {
	Name     string
	DataType string
}

// Inventory summarizes the mailbox table for operators.
type Inventory struct {
	Total   int64
	Columns []Column
	Recent  []*Mailbox
}
