package catalog

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrCategoryNotFound = errors.New("category not found")
var ErrDuplicateSKU = errors.New("a product with this SKU already exists")
var ErrOptimisticLock = errors.New("optimistic lock error: the record has been modified by another transaction")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")
