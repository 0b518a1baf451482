package entities

import "errors"

// ErrWalletAddressExists is returned when registering a wallet whose address
// is already present. Addresses are unique store-wide.
var ErrWalletAddressExists = errors.New("wallet address already registered")
