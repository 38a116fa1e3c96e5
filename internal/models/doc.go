// Package models defines the core domain models for Housetab.
//
// The central type is Expense: one shared cost fronted by a payer and
// split among participants by fractional shares. An expense is created
// once with its payer and participants fixed for life; afterwards the
// only mutation it sees is a participant share transitioning to paid.
//
// Households scope expenses to a group of users. Users are registered
// accounts; everywhere else in the system they appear only as opaque
// ID strings compared for equality.
package models
