// Package budget implements the allocation and ledger rules of the budget:
// distributing income across categories, applying transactions to category
// balances, and funding savings goals from categories.
//
// Every operation is a pure function over a model.State (or a category
// list): the input is never modified and a new value is returned. Callers
// decide when to invoke an operation; nothing here recomputes implicitly.
package budget
