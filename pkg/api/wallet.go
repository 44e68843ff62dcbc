package api

type WalletMember struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joinedAt"`
}

type Wallet struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	InviteCode   string          `json:"inviteCode,omitempty"`
	IsActive     bool            `json:"isActive"`
	Members      []*WalletMember `json:"members"`
	PaymentCount int             `json:"paymentCount"`
	CreatedAt    int64           `json:"createdAt"`
	UpdatedAt    int64           `json:"updatedAt"`
}

type CreateWalletRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type WalletResponse struct {
	Wallet *Wallet `json:"wallet"`
}

type ListWalletsResponse struct {
	Wallets []*Wallet `json:"wallets"`
}

type GetWalletRequest struct {
	WalletID string `json:"walletId" validate:"required"`
}

// GetWalletResponse carries the wallet with its payments, newest first.
type GetWalletResponse struct {
	Wallet   *Wallet    `json:"wallet"`
	Payments []*Payment `json:"payments"`
}

type UpdateWalletRequest struct {
	WalletID    string `json:"walletId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type DeleteWalletRequest struct {
	WalletID string `json:"walletId" validate:"required"`
}

type GetInviteRequest struct {
	Code string `json:"code" validate:"required"`
}

// InvitePreview is what an invite link shows before joining.
type InvitePreview struct {
	WalletID    string   `json:"walletId"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MemberNames []string `json:"memberNames"`
}

type JoinWalletRequest struct {
	Code string `json:"code" validate:"required"`
}
