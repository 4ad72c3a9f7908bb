package order

import "errors"

var ErrOrderNotFound = errors.New("order not found")
var ErrCreateOrder = errors.New("failed to create order")
var ErrUpdateOrder = errors.New("failed to update order")
var ErrEmptyCart = errors.New("cannot create an order from an empty cart")
var ErrInvalidTransition = errors.New("illegal order status transition")
var ErrOptimisticLock = errors.New("optimistic lock error: the record has been modified by another transaction")
var ErrAccessDenied = errors.New("access denied")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")
