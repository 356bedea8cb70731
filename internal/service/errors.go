package service

import "errors"

var (
	ErrUnknownProduct = errors.New("unknown product code")
	ErrWeightRequired = errors.New("weighable product requires a positive weight")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrBadIndex       = errors.New("no cart line at that index")
	ErrBadPayment     = errors.New("invalid payment method")
)
