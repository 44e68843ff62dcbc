package api

type MemberBalance struct {
	UserID             string  `json:"userId"`
	Name               string  `json:"name"`
	Image              string  `json:"image,omitempty"`
	TotalPaid          float64 `json:"totalPaid"`
	TotalOwed          float64 `json:"totalOwed"`
	Balance            float64 `json:"balance"`
	PaymentCount       int     `json:"paymentCount"`
	ParticipationCount int     `json:"participationCount"`
}

type Party struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Image  string `json:"image,omitempty"`
}

// Transfer is a proposed payment from a debtor to a creditor.
type Transfer struct {
	From   *Party `json:"from"`
	To     *Party `json:"to"`
	Amount int64  `json:"amount"`
}

type Settlement struct {
	ID          string `json:"id"`
	WalletID    string `json:"walletId"`
	FromUserID  string `json:"fromUserId"`
	FromName    string `json:"fromName"`
	ToUserID    string `json:"toUserId"`
	ToName      string `json:"toName"`
	Amount      int64  `json:"amount"`
	IsCompleted bool   `json:"isCompleted"`
	CompletedAt int64  `json:"completedAt,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

type GetSettlementStatusRequest struct {
	WalletID string `json:"walletId" validate:"required"`
}

type SettlementStatus struct {
	WalletID               string           `json:"walletId"`
	WalletName             string           `json:"walletName"`
	MemberBalances         []*MemberBalance `json:"memberBalances"`
	SettlementTransactions []*Transfer      `json:"settlementTransactions"`
	NeedsSettlement        bool             `json:"needsSettlement"`
	TotalExpenses          int64            `json:"totalExpenses"`
	TotalMembers           int              `json:"totalMembers"`
	TotalPayments          int              `json:"totalPayments"`
	Summary                string           `json:"summary"`
	ExistingSettlements    []*Settlement    `json:"existingSettlements"`
	CalculatedAt           int64            `json:"calculatedAt"`
}

type TransactionInput struct {
	FromUserID string `json:"fromUserId" validate:"required"`
	ToUserID   string `json:"toUserId" validate:"required"`
	Amount     int64  `json:"amount"`
}

type RecordSettlementsRequest struct {
	WalletID     string              `json:"walletId" validate:"required"`
	Transactions []*TransactionInput `json:"transactions" validate:"required,min=1,dive,required"`
}

type RecordSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type UpdateSettlementRequest struct {
	SettlementID string `json:"settlementId" validate:"required"`
	IsCompleted  bool   `json:"isCompleted"`
}

type SettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlementId" validate:"required"`
}
