// Package models defines the persisted domain records for Splitwallet.
//
// # Records
//
//   - User: an account that can join wallets
//   - Wallet: a shared expense group with an invite code
//   - WalletMember: a user's membership (and role) in one wallet
//   - Payment: money one member paid on behalf of the wallet
//   - PaymentParticipant: one member's share of a payment
//   - Settlement: a logged transfer between two members
//
// Derived values (member balances, proposed transfers) are not stored here; they
// live in the calculator package and are recomputed from payments on every read.
//
// # Design Principles
//
// 1. **Integer money**: amounts are whole currency units (int64), never floats
// 2. **IDs, not pointers**: relationships are expressed with ID strings
// 3. **Unix timestamps**: all times are seconds since the epoch
package models
