package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

const (
	mysqlDuplicateEntry = 1062
	mysqlNoSuchTable    = 1146

	pqUndefinedTable  = "42P01"
	pqUniqueViolation = "23505"
)

// IsMissingTable reports whether err means the queried table does not exist.
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlNoSuchTable
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return string(pe.Code) == pqUndefinedTable
	}
	return strings.Contains(err.Error(), "no such table")
}

// IsDuplicateKey reports unique constraint violations.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return string(pe.Code) == pqUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
