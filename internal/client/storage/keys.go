package storage

// Fixed storage slots. Each key is written by exactly one owner.
const (
	// KeyCurrentUser holds the signed-in Identity as JSON; owned by the session.
	KeyCurrentUser = "current_user"
	// KeyMemoItems holds the memo snapshot as a JSON array; owned by the memo store.
	KeyMemoItems = "memo_items"
	// KeyLegacyLedger is the local-only ledger snapshot of the single-user
	// revision. It is read once by MigrateLegacy and then removed.
	KeyLegacyLedger = "ledger_items"
	// KeyLegacyPasswordHash is the PIN digest of the single-user revision.
	KeyLegacyPasswordHash = "ledger_password_hash"
)
