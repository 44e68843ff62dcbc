package models

// Member roles.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Wallet represents a shared expense group.
type Wallet struct {
	// ID is the unique identifier for the wallet (UUID format).
	ID string

	// Name is the display name (e.g., "Kyoto Trip").
	Name string

	// Description is optional free text.
	Description string

	// InviteCode lets other users join the wallet.
	InviteCode string

	// IsActive is false for archived wallets. Only active wallets can be joined or listed.
	IsActive bool

	// Members is the current membership list. Populated on reads.
	Members []WalletMember

	// PaymentCount is the number of payments recorded. Populated by list queries.
	PaymentCount int

	// CreatedAt is the Unix timestamp when the wallet was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last change to the wallet itself.
	UpdatedAt int64
}

// WalletMember is a user's membership in a wallet.
type WalletMember struct {
	WalletID string
	UserID   string
	Role     string
	JoinedAt int64

	// Name and Image are copied from the user record on reads.
	Name  string
	Image string
}

// HasMember reports whether userID belongs to the wallet.
func (w *Wallet) HasMember(userID string) bool {
	return w.Member(userID) != nil
}

// Member returns the membership for userID, or nil.
func (w *Wallet) Member(userID string) *WalletMember {
	for i := range w.Members {
		if w.Members[i].UserID == userID {
			return &w.Members[i]
		}
	}
	return nil
}

// IsOwner reports whether userID is an owner of the wallet.
func (w *Wallet) IsOwner(userID string) bool {
	m := w.Member(userID)
	return m != nil && m.Role == RoleOwner
}
