// Package services contains the client stores: credentials, the remote
// ledger and the local memo collection. Public mutators never return raw
// errors; they return result.Result values carrying a kind and a
// user-facing message.
package services
