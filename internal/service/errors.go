package service

import "errors"

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrExpenseNotFound = errors.New("expense not found")
)
