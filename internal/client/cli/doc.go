// Package cli provides vmailctl, the operator command-line client of the
// vmail API.
//
// Commands can be given once on the command line or typed into the REPL
// started when no command is given:
//
//	login              authenticate and keep the access token
//	register           create a mailbox (admin, interactive prompts)
//	get <username>     show a mailbox (admin)
//	inspect [limit]    row count, columns and recent mailboxes (admin)
//	ping               check the server
//	logout             forget the access token
//
// Admin commands ask for credentials first when no token is held.
package cli
