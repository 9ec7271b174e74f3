// Package postgres contains the PostgreSQL implementations of the store
// interfaces, plus shared database error mapping helpers.
package postgres
